package rulepack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptly/internal/emotion"
)

func TestDefaultPack(t *testing.T) {
	pack, err := Default()
	require.NoError(t, err)

	assert.Equal(t, Version, pack.Version)
	require.Len(t, pack.EmotionRules, 3)
	assert.Equal(t, emotion.Tired, pack.EmotionRules[0].Emotion)
	assert.Equal(t, "low", pack.EmotionRules[0].Conditions["energy_level"])
	assert.Equal(t, 0.9, pack.EmotionRules[2].Confidence)
	assert.Empty(t, pack.Problems())

	cands := pack.Candidates()
	require.Len(t, cands, 3)
	assert.Equal(t, "fractions-visual", cands[0].ID)
	assert.True(t, cands[0].IsDefault)
	assert.True(t, cands[0].IsActive, "missing is_active defaults to active")
	assert.Equal(t, []string{"food", "games"}, cands[1].Target.Interests)
	assert.Equal(t, "game", cands[1].Target.PedagogicalApproach)
	assert.Equal(t, 3.5, cands[1].EffectivenessScore)
}

func TestParse_InactiveAndNumericCondition(t *testing.T) {
	data := []byte(`
version: 1
emotion_rules:
  - emotion: bored
    suggested_action: difficulty_increase
    conditions:
      consecutive_correct: 4
presentations:
  - id: p1
    skill_id: s1
    is_active: false
`)
	pack, err := Parse("inline", data)
	require.NoError(t, err)

	assert.Equal(t, "4", pack.EmotionRules[0].Conditions["consecutive_correct"])
	assert.False(t, pack.Candidates()[0].IsActive)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing version", "emotion_rules: []\n"},
		{"wrong version", "version: 2\n"},
		{"unknown top-level key", "version: 1\nrules: []\n"},
		{"unknown emotion", "version: 1\nemotion_rules:\n  - emotion: sleepy\n    suggested_action: nap\n    conditions: {}\n"},
		{"missing action", "version: 1\nemotion_rules:\n  - emotion: bored\n    conditions: {}\n"},
		{"confidence out of range", "version: 1\nemotion_rules:\n  - emotion: bored\n    suggested_action: x\n    conditions: {}\n    confidence: 1.5\n"},
		{"presentation without id", "version: 1\npresentations:\n  - skill_id: s1\n"},
		{"negative duration", "version: 1\npresentations:\n  - id: p\n    skill_id: s\n    estimated_duration_minutes: -5\n"},
		{"unknown target field", "version: 1\npresentations:\n  - id: p\n    skill_id: s\n    target:\n      energy_fit: high\n"},
		{"empty document", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline", []byte(tt.data))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want *ValidationError, got %T: %v", err, err)
			assert.Equal(t, "inline", verr.Source)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse("broken", []byte("version: [1\n"))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "syntax errors are not schema violations")
}

func TestProblems_ReportsUnmatchableRules(t *testing.T) {
	data := []byte(`
version: 1
emotion_rules:
  - emotion: bored
    suggested_action: difficulty_increase
    conditions:
      mood: ">=3"
  - emotion: tired
    suggested_action: break_suggestion
    conditions:
      session_duration_minutes: ">=abc"
`)
	pack, err := Parse("inline", data)
	require.NoError(t, err)
	assert.Len(t, pack.Problems(), 2)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	pack, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, pack.EmotionRules)
	assert.Empty(t, pack.Candidates())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
