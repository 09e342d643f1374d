package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/adaptly/internal/prioritizer"
	"github.com/abhisek/adaptly/internal/spacedrep"
)

// DueReview is an exercise due for review with its schedule status.
type DueReview struct {
	ExerciseID  string
	Status      spacedrep.ReviewStatus
	OverdueDays int
}

// DueReviews lists the learner's exercises due for review, most urgent first.
// limit <= 0 means no limit.
func (s *Service) DueReviews(ctx context.Context, learnerID string, limit int) ([]DueReview, error) {
	if err := requireID("learner id", learnerID); err != nil {
		return nil, err
	}
	progress, err := s.store.Repo().ListExerciseProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("due reviews: %w", err)
	}
	now := s.clock.Now()

	ids := prioritizer.DueForReview(candidates(progress, nil), now, limit)
	byID := make(map[string]*spacedrep.ReviewState, len(progress))
	for i := range progress {
		byID[progress[i].ExerciseID] = reviewState(&progress[i])
	}

	out := make([]DueReview, len(ids))
	for i, id := range ids {
		out[i] = DueReview{ExerciseID: id, Status: spacedrep.ReviewDue}
		if rs := byID[id]; rs != nil {
			out[i].Status = rs.Status(now)
			out[i].OverdueDays = rs.OverdueDays(now)
		}
	}
	s.log.Debug("due reviews", "learner", learnerID, "due", len(out), "tracked", len(progress))
	return out, nil
}

// Practice ranks the learner's exercises for free-choice practice. Extra ids
// the learner has never attempted join the pool as new exercises.
func (s *Service) Practice(ctx context.Context, learnerID string, extra []string) ([]prioritizer.Scored, error) {
	if err := requireID("learner id", learnerID); err != nil {
		return nil, err
	}
	progress, err := s.store.Repo().ListExerciseProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("practice: %w", err)
	}
	ranked := prioritizer.Rank(candidates(progress, extra), s.clock.Now())
	s.log.Debug("practice ranked", "learner", learnerID, "candidates", len(ranked))
	return ranked, nil
}
