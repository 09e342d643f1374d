package mastery

import (
	"math"
	"time"
)

// Band is a coarse mastery bucket derived from the fluency level.
type Band string

const (
	BandNew        Band = "new"
	BandLearning   Band = "learning"
	BandProficient Band = "proficient"
	BandMastered   Band = "mastered"
)

const (
	// ProficientLevel is the minimum level for BandProficient.
	ProficientLevel = 60

	// MasteredLevel is the minimum level for BandMastered.
	MasteredLevel = 80

	// MinMasteryAttempts is the number of attempts required before an
	// exercise can be considered mastered.
	MinMasteryAttempts = 5
)

// ExerciseMastery tracks fluency for a single exercise.
type ExerciseMastery struct {
	ExerciseID    string         `json:"exercise_id"`
	Attempts      int            `json:"attempts"`
	CorrectCount  int            `json:"correct_count"`
	Fluency       FluencyMetrics `json:"fluency"`
	LastAttemptAt *time.Time     `json:"last_attempt_at,omitempty"`
}

// NewExerciseMastery returns an empty mastery record with default fluency settings.
func NewExerciseMastery(exerciseID string) *ExerciseMastery {
	return &ExerciseMastery{
		ExerciseID: exerciseID,
		Fluency:    DefaultFluencyMetrics(),
	}
}

// Record folds one attempt into the mastery record. Speed is only sampled on
// correct answers; a wrong answer breaks the streak.
func (m *ExerciseMastery) Record(correct bool, timeMs, expectedMs int, at time.Time) {
	m.Attempts++
	if correct {
		m.CorrectCount++
		m.Fluency.Streak++
		RecordSpeed(&m.Fluency, SpeedScore(timeMs, expectedMs))
	} else {
		m.Fluency.Streak = 0
	}
	t := at.UTC()
	m.LastAttemptAt = &t
}

// Accuracy returns the fraction of correct attempts, 0 when unattempted.
func (m *ExerciseMastery) Accuracy() float64 {
	if m.Attempts == 0 {
		return 0
	}
	return float64(m.CorrectCount) / float64(m.Attempts)
}

// Score returns the fluency score in [0, 1].
func (m *ExerciseMastery) Score() float64 {
	return FluencyScore(&m.Fluency, m.Accuracy())
}

// Level returns the fluency score as an integer in [0, 100].
func (m *ExerciseMastery) Level() int {
	if m.Attempts == 0 {
		return 0
	}
	return int(math.Round(m.Score() * 100))
}

// Band classifies the record.
func (m *ExerciseMastery) Band() Band {
	level := m.Level()
	switch {
	case m.Attempts == 0:
		return BandNew
	case level >= MasteredLevel && m.Attempts >= MinMasteryAttempts:
		return BandMastered
	case level >= ProficientLevel:
		return BandProficient
	default:
		return BandLearning
	}
}

// BandChange describes a move between bands caused by one attempt.
type BandChange struct {
	ExerciseID string
	From       Band
	To         Band
}

// Promoted reports whether the change moved the exercise up a band.
func (c BandChange) Promoted() bool {
	return bandRank(c.To) > bandRank(c.From)
}

// RecordAndCompare records an attempt and returns the band change, if any.
func (m *ExerciseMastery) RecordAndCompare(correct bool, timeMs, expectedMs int, at time.Time) *BandChange {
	before := m.Band()
	m.Record(correct, timeMs, expectedMs, at)
	after := m.Band()
	if before == after {
		return nil
	}
	return &BandChange{ExerciseID: m.ExerciseID, From: before, To: after}
}

func bandRank(b Band) int {
	switch b {
	case BandLearning:
		return 1
	case BandProficient:
		return 2
	case BandMastered:
		return 3
	default:
		return 0
	}
}
