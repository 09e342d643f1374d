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

// RecentEmotionLimit caps the emotion history included in Stats.
const RecentEmotionLimit = 5

// ExerciseStat is the per-exercise row of Stats.
type ExerciseStat struct {
	ExerciseID      string
	MasteryLevel    int
	Band            mastery.Band
	Accuracy        float64
	Attempts        int
	ReviewStatus    spacedrep.ReviewStatus
	NextReviewDate  *time.Time
	DaysUntilReview int // zero once due
}

// Stats is a learner's overall picture.
type Stats struct {
	LearnerID      string
	Progression    progression.State
	LevelProgress  float64
	Streak         streak.State
	Attempts       store.AttemptStats
	Gems           map[gems.GemType]int
	TotalGems      int
	Exercises      []ExerciseStat
	RecentEmotions []store.EmotionEventRecord
}

// Stats gathers the learner's progression, streak, gems and per-exercise mastery.
func (s *Service) Stats(ctx context.Context, learnerID string) (*Stats, error) {
	if err := requireID("learner id", learnerID); err != nil {
		return nil, err
	}
	r := s.store.Repo()
	now := s.clock.Now()
	st := &Stats{LearnerID: learnerID, Progression: progression.NewState()}

	prog, err := r.ProgressionState(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if prog != nil {
		st.Progression = *prog
	}
	st.LevelProgress = progression.Progress(st.Progression)

	sk, err := r.StreakState(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if sk != nil {
		st.Streak = *sk
	}

	if st.Attempts, err = r.AttemptStats(ctx, learnerID); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if st.Gems, st.TotalGems, err = gems.NewService(r).Counts(ctx, learnerID); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if st.RecentEmotions, err = r.QueryEmotionEvents(ctx, learnerID, store.QueryOpts{Limit: RecentEmotionLimit}); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	progress, err := r.ListExerciseProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	for i := range progress {
		p := &progress[i]
		m := masteryOf(p)
		row := ExerciseStat{
			ExerciseID:     p.ExerciseID,
			MasteryLevel:   m.Level(),
			Band:           m.Band(),
			Accuracy:       m.Accuracy(),
			Attempts:       p.Attempts,
			ReviewStatus:   spacedrep.ReviewDue,
			NextReviewDate: p.NextReviewDate,
		}
		if rs := reviewState(p); rs != nil {
			row.ReviewStatus = rs.Status(now)
			row.DaysUntilReview = rs.DaysUntilReview(now)
		}
		st.Exercises = append(st.Exercises, row)
	}
	return st, nil
}
