package engine

import (
	"github.com/abhisek/adaptly/internal/mastery"
	"github.com/abhisek/adaptly/internal/prioritizer"
	"github.com/abhisek/adaptly/internal/spacedrep"
	"github.com/abhisek/adaptly/internal/store"
)

// reviewState returns the stored SM-2 state, or nil before the first review.
func reviewState(p *store.ExerciseProgress) *spacedrep.ReviewState {
	if p == nil || p.NextReviewDate == nil {
		return nil
	}
	return &spacedrep.ReviewState{
		Interval:       p.Interval,
		EaseFactor:     p.EaseFactor,
		Repetitions:    p.Repetitions,
		NextReviewDate: *p.NextReviewDate,
	}
}

func masteryOf(p *store.ExerciseProgress) *mastery.ExerciseMastery {
	m := mastery.NewExerciseMastery(p.ExerciseID)
	m.Attempts = p.Attempts
	m.CorrectCount = p.CorrectCount
	m.Fluency.Streak = p.Streak
	m.Fluency.SpeedScores = append([]float64(nil), p.SpeedScores...)
	m.LastAttemptAt = p.LastAttemptAt
	return m
}

func candidateOf(p *store.ExerciseProgress) prioritizer.Candidate {
	return prioritizer.Candidate{
		ID:             p.ExerciseID,
		MasteryLevel:   masteryOf(p).Level(),
		LastAttemptAt:  p.LastAttemptAt,
		NextReviewDate: p.NextReviewDate,
	}
}

// candidates merges stored progress with extra exercise ids the learner has
// not attempted yet. Stored exercises come first, in id order.
func candidates(progress []store.ExerciseProgress, extra []string) []prioritizer.Candidate {
	seen := make(map[string]bool, len(progress))
	out := make([]prioritizer.Candidate, 0, len(progress)+len(extra))
	for i := range progress {
		seen[progress[i].ExerciseID] = true
		out = append(out, candidateOf(&progress[i]))
	}
	for _, id := range extra {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, prioritizer.Candidate{ID: id})
	}
	return out
}
