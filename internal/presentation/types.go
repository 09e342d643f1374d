// Package presentation scores interchangeable content variants for one skill against
// a learner's profile and picks the best fit.
package presentation

import (
	"context"
)

// Energy levels a learner can report.
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Pedagogical approaches that the energy heuristic knows about.
const (
	ApproachDirect    = "direct"
	ApproachGame      = "game"
	ApproachDiscovery = "discovery"
)

// TargetProfile describes who a variant was designed for.
type TargetProfile struct {
	AgeMin              int      `json:"age_min" yaml:"age_min"`
	AgeMax              int      `json:"age_max" yaml:"age_max"`
	LearningStyle       string   `json:"learning_style,omitempty" yaml:"learning_style,omitempty"`
	Interests           []string `json:"interests,omitempty" yaml:"interests,omitempty"`
	PedagogicalApproach string   `json:"pedagogical_approach,omitempty" yaml:"pedagogical_approach,omitempty"`
}

// Candidate is one content variant for a skill.
type Candidate struct {
	ID                       string
	SkillID                  string
	Target                   TargetProfile
	EstimatedDurationMinutes int
	EngagementScore          float64
	EffectivenessScore       float64
	IsDefault                bool
	IsActive                 bool
}

// LearnerContext is the learner profile a candidate is scored against.
// Empty strings and a nil TimeAvailableMinutes mean "unknown".
type LearnerContext struct {
	Age                  int
	LearningStyle        string
	Interests            []string
	PreferredMethod      string
	EnergyLevel          string
	TimeAvailableMinutes *int
}

// PriorContext carries what was shown last, for anti-repetition.
type PriorContext struct {
	LastPresentationID string
}

// Selection is a scored candidate with the reasons that contributed to its score.
type Selection struct {
	Candidate Candidate
	Score     float64
	Reasons   []string
}

// VariantSource produces new candidates for a skill. It is implemented by the
// external content-generation service; nothing in this module implements it.
type VariantSource interface {
	GenerateVariants(ctx context.Context, skillID string, learner LearnerContext) ([]Candidate, error)
}
