package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/adaptly/internal/session"
)

// StartSession plans a practice session over the learner's exercises plus
// any new exercise ids supplied. The plan carries a fresh session id that
// attempts and emotion checks should use.
func (s *Service) StartSession(ctx context.Context, learnerID string, extra []string) (*session.Plan, error) {
	if err := requireID("learner id", learnerID); err != nil {
		return nil, err
	}
	progress, err := s.store.Repo().ListExerciseProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	plan := session.NewPlanner().BuildPlan(candidates(progress, extra), s.clock.Now())
	plan.ID = uuid.NewString()
	s.log.Info("session planned", "learner", learnerID, "session", plan.ID, "slots", len(plan.Slots))
	return plan, nil
}

// SessionSummary summarizes the attempts recorded under sessionID.
func (s *Service) SessionSummary(ctx context.Context, learnerID, sessionID string) (*session.Summary, error) {
	if err := requireID("learner id", learnerID); err != nil {
		return nil, err
	}
	if err := requireID("session id", sessionID); err != nil {
		return nil, err
	}
	records, err := s.store.Repo().SessionAttempts(ctx, learnerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session summary: %w", err)
	}
	return session.BuildSummary(sessionID, attemptsOf(records)), nil
}
