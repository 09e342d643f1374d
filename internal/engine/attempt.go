package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptly/internal/gems"
	"github.com/abhisek/adaptly/internal/mastery"
	"github.com/abhisek/adaptly/internal/progression"
	"github.com/abhisek/adaptly/internal/spacedrep"
	"github.com/abhisek/adaptly/internal/store"
	"github.com/abhisek/adaptly/internal/streak"
)

// XP awarded per attempt.
const (
	XPCorrect      = 10
	XPPerfectBonus = 5 // quality 5 answers
	XPIncorrect    = 2
)

// AttemptInput is one answered exercise.
type AttemptInput struct {
	LearnerID  string
	SessionID  string
	ExerciseID string
	Correct    bool
	TimeMs     int
	ExpectedMs int // zero uses the configured default
	HintsUsed  int
}

// AttemptResult reports everything an attempt changed.
type AttemptResult struct {
	Quality       spacedrep.Quality
	Review        spacedrep.ReviewState
	MasteryLevel  int
	Band          mastery.Band
	BandChange    *mastery.BandChange
	XPAwarded     int
	Progression   progression.State
	LevelUp       bool
	Streak        streak.State
	StreakOutcome streak.Outcome
	Gems          []gems.GemAward
}

// XPForAttempt returns the XP earned by one attempt.
func XPForAttempt(correct bool, q spacedrep.Quality) int {
	if !correct {
		return XPIncorrect
	}
	if q == spacedrep.QualityPerfect {
		return XPCorrect + XPPerfectBonus
	}
	return XPCorrect
}

func (in AttemptInput) validate() error {
	if err := requireID("exercise id", in.ExerciseID); err != nil {
		return err
	}
	if err := requireNonNegative("time ms", in.TimeMs); err != nil {
		return err
	}
	if err := requireNonNegative("expected ms", in.ExpectedMs); err != nil {
		return err
	}
	return requireNonNegative("hints used", in.HintsUsed)
}

// RecordAttempt schedules the exercise's next review, updates mastery, awards
// XP, counts the day toward the streak and hands out any gems earned.
func (s *Service) RecordAttempt(ctx context.Context, in AttemptInput) (*AttemptResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var res AttemptResult
	err := s.withLearner(ctx, in.LearnerID, func(r *store.Repo, now time.Time) error {
		p, err := r.ExerciseProgress(ctx, in.LearnerID, in.ExerciseID)
		if err != nil {
			return err
		}
		if p == nil {
			p = &store.ExerciseProgress{LearnerID: in.LearnerID, ExerciseID: in.ExerciseID}
		}

		res.Quality = spacedrep.EstimateQuality(in.Correct, in.TimeMs, in.HintsUsed)
		res.Review, err = spacedrep.NextReview(reviewState(p), res.Quality, now)
		if err != nil {
			return err
		}

		expected := in.ExpectedMs
		if expected == 0 {
			expected = s.opts.ExpectedResponseMs
		}
		m := masteryOf(p)
		res.BandChange = m.RecordAndCompare(in.Correct, in.TimeMs, expected, now)
		res.MasteryLevel = m.Level()
		res.Band = m.Band()

		p.Interval = res.Review.Interval
		p.EaseFactor = res.Review.EaseFactor
		p.Repetitions = res.Review.Repetitions
		p.NextReviewDate = &res.Review.NextReviewDate
		p.LastAttemptAt = m.LastAttemptAt
		p.Attempts = m.Attempts
		p.CorrectCount = m.CorrectCount
		p.Streak = m.Fluency.Streak
		p.SpeedScores = m.Fluency.SpeedScores
		p.UpdatedAt = now
		if err := r.SaveExerciseProgress(ctx, p); err != nil {
			return err
		}

		if err := r.AppendAttemptEvent(ctx, store.AttemptEventData{
			Timestamp:  now,
			LearnerID:  in.LearnerID,
			SessionID:  in.SessionID,
			ExerciseID: in.ExerciseID,
			Correct:    in.Correct,
			TimeMs:     in.TimeMs,
			ExpectedMs: in.ExpectedMs,
			HintsUsed:  in.HintsUsed,
			Quality:    int(res.Quality),
		}); err != nil {
			return err
		}

		res.XPAwarded = XPForAttempt(in.Correct, res.Quality)
		xp, err := s.addXP(ctx, r, in.LearnerID, res.XPAwarded, now)
		if err != nil {
			return err
		}
		res.Progression, res.LevelUp = xp.State, xp.LevelUp
		res.Gems = append(res.Gems, xp.Gems...)

		st, err := s.checkIn(ctx, r, in.LearnerID, now)
		if err != nil {
			return err
		}
		res.Streak, res.StreakOutcome = st.State, st.Outcome
		res.Gems = append(res.Gems, st.Gems...)

		if res.BandChange != nil && res.BandChange.To == mastery.BandMastered {
			award, err := gems.NewService(r).AwardMastery(ctx, in.LearnerID, in.ExerciseID, m.Accuracy(), now)
			if err != nil {
				return err
			}
			res.Gems = append(res.Gems, *award)
		}

		s.log.Debug("attempt recorded",
			"learner", in.LearnerID, "exercise", in.ExerciseID, "correct", in.Correct,
			"quality", int(res.Quality), "interval", res.Review.Interval,
			"ease_factor", res.Review.EaseFactor, "mastery", res.MasteryLevel)
		if res.BandChange != nil {
			s.log.Info("mastery band changed",
				"learner", in.LearnerID, "exercise", in.ExerciseID,
				"from", res.BandChange.From, "to", res.BandChange.To, "promoted", res.BandChange.Promoted())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}
	return &res, nil
}
