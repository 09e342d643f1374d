package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/adaptly/internal/apperr"
	"github.com/abhisek/adaptly/internal/clock"
)

// NewReviewState returns the state of an exercise that has never been reviewed.
func NewReviewState() ReviewState {
	return ReviewState{
		Interval:    InitialInterval,
		EaseFactor:  InitialEaseFactor,
		Repetitions: 0,
	}
}

// NextReview applies one SM-2 step. A nil state is treated as NewReviewState().
// The input state is never modified.
func NextReview(state *ReviewState, q Quality, now time.Time) (ReviewState, error) {
	if !q.Valid() {
		return ReviewState{}, apperr.NewInvalidInput("quality", int(q), "must be between 0 and 5")
	}

	next := NewReviewState()
	if state != nil {
		next = *state
	}

	if !q.Passing() {
		// Forgetting resets progress entirely.
		next.Repetitions = 0
		next.Interval = InitialInterval
	} else {
		switch next.Repetitions {
		case 0:
			next.Interval = InitialInterval
		case 1:
			next.Interval = SecondInterval
		default:
			next.Interval = int(math.Round(float64(next.Interval) * next.EaseFactor))
		}
		next.Repetitions++
	}

	next.EaseFactor = nextEaseFactor(next.EaseFactor, q)
	next.Interval = clampInterval(next.Interval)
	next.NextReviewDate = clock.AddDays(now, next.Interval)
	return next, nil
}

// nextEaseFactor applies EF' = EF + 0.1 - (5-q)(0.08 + (5-q)0.02), floored at MinEaseFactor.
func nextEaseFactor(ef float64, q Quality) float64 {
	d := float64(QualityPerfect - q)
	ef += 0.1 - d*(0.08+d*0.02)
	if ef < MinEaseFactor {
		return MinEaseFactor
	}
	return ef
}

func clampInterval(days int) int {
	if days < MinInterval {
		return MinInterval
	}
	if days > MaxInterval {
		return MaxInterval
	}
	return days
}
