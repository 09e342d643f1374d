package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInput_WrappedMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("add xp: %w", NewInvalidInput("amount", -5, "must not be negative"))

	assert.True(t, IsInvalidInput(err))
	assert.EqualError(t, err, "add xp: invalid amount (-5): must not be negative")

	var target *InvalidInput
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, "amount", target.Field)
}

func TestInvalidInput_NoReason(t *testing.T) {
	err := NewInvalidInput("quality", 7, "")
	assert.Equal(t, "invalid quality: 7", err.Error())
}

func TestIsInvalidInput_OtherErrors(t *testing.T) {
	assert.False(t, IsInvalidInput(fmt.Errorf("boom")))
	assert.False(t, IsInvalidInput(nil))
}
