// Package apperr defines the error taxonomy shared by the engine's components.
package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel matched by every *InvalidInput via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInput reports a value rejected at a component boundary.
type InvalidInput struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInput) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInput) Is(target error) bool { return target == ErrInvalidInput }

// NewInvalidInput builds an *InvalidInput error.
func NewInvalidInput(field string, value any, reason string) *InvalidInput {
	return &InvalidInput{Field: field, Value: value, Reason: reason}
}

// IsInvalidInput reports whether err (or anything it wraps) is an input rejection.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
