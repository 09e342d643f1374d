// Package emotion classifies a learner's behavioral signals into an emotional state
// and a suggested pedagogical action.
package emotion

import "slices"

// Emotion is a detected learner state.
type Emotion string

const (
	Engaged    Emotion = "engaged"
	Frustrated Emotion = "frustrated"
	Bored      Emotion = "bored"
	Tired      Emotion = "tired"
	Confident  Emotion = "confident"
	Struggling Emotion = "struggling"
)

// AllEmotions returns every emotion in display order.
func AllEmotions() []Emotion {
	return []Emotion{Engaged, Frustrated, Bored, Tired, Confident, Struggling}
}

// Valid reports whether e is a known emotion.
func (e Emotion) Valid() bool {
	return slices.Contains(AllEmotions(), e)
}

// Suggested actions produced by the default ladder.
const (
	ActionEasierExercise     = "easier_exercise"
	ActionDifficultyIncrease = "difficulty_increase"
	ActionBreakSuggestion    = "break_suggestion"
	ActionCelebration        = "celebration"
	ActionGuidedHelp         = "guided_help"
	ActionContinue           = "continue"
)

// Signals are the per-session behavioral measurements a detection is based on.
type Signals struct {
	ResponseTimeAvg        float64 `json:"response_time_avg"`   // seconds
	ResponseTimeRatio      float64 `json:"response_time_ratio"` // observed / expected latency
	ConsecutiveErrors      int     `json:"consecutive_errors"`
	ConsecutiveCorrect     int     `json:"consecutive_correct"`
	SessionDurationMinutes float64 `json:"session_duration_minutes"`
	HintRequests           int     `json:"hint_requests"`
	SuccessRate            float64 `json:"success_rate"` // 0–1
	EnergyLevel            string  `json:"energy_level,omitempty"`
}

// Rule maps a set of signal conditions to an emotion. Conditions map a signal name
// (camelCase or snake_case) to a comparator string such as ">=3" or "high".
type Rule struct {
	Conditions      map[string]string `json:"conditions" yaml:"conditions"`
	Emotion         Emotion           `json:"emotion" yaml:"emotion"`
	SuggestedAction string            `json:"suggested_action" yaml:"suggested_action"`
	MessageTemplate string            `json:"message_template,omitempty" yaml:"message_template,omitempty"`
	Priority        int               `json:"priority" yaml:"priority"`
	Confidence      float64           `json:"confidence,omitempty" yaml:"confidence,omitempty"` // 0 means DefaultRuleConfidence
}

// DefaultRuleConfidence is the confidence reported for a configured-rule match.
const DefaultRuleConfidence = 0.8

// Source identifies what produced a detection.
type Source string

const (
	SourceRule    Source = "rule"
	SourceDefault Source = "default"
)

// Detection is the result of classifying a set of signals.
type Detection struct {
	Emotion         Emotion
	Confidence      float64
	SuggestedAction string
	Message         string
	Source          Source
	// Rule is the index of the matching rule in priority order, or -1 for the default ladder.
	Rule int
}
