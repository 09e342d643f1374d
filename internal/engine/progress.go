package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptly/internal/gems"
	"github.com/abhisek/adaptly/internal/progression"
	"github.com/abhisek/adaptly/internal/store"
	"github.com/abhisek/adaptly/internal/streak"
)

// XPResult is the outcome of an XP award.
type XPResult struct {
	State   progression.State
	LevelUp bool
	Gems    []gems.GemAward
}

// StreakResult is the outcome of a streak mutation.
type StreakResult struct {
	State   streak.State
	Outcome streak.Outcome
	Changed bool // false when a freeze operation was refused
	Gems    []gems.GemAward
}

// AddXP awards amount XP to the learner.
func (s *Service) AddXP(ctx context.Context, learnerID string, amount int) (*XPResult, error) {
	if err := requireNonNegative("xp amount", amount); err != nil {
		return nil, err
	}
	var res *XPResult
	err := s.withLearner(ctx, learnerID, func(r *store.Repo, now time.Time) error {
		var err error
		res, err = s.addXP(ctx, r, learnerID, amount, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("add xp: %w", err)
	}
	return res, nil
}

func (s *Service) addXP(ctx context.Context, r *store.Repo, learnerID string, amount int, now time.Time) (*XPResult, error) {
	prev, err := r.ProgressionState(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	next, levelUp, err := progression.AddXP(prev, amount, now)
	if err != nil {
		return nil, err
	}
	if err := r.SaveProgressionState(ctx, learnerID, next); err != nil {
		return nil, err
	}

	res := &XPResult{State: next, LevelUp: levelUp}
	s.log.Debug("xp added", "learner", learnerID, "amount", amount, "total", next.TotalXP, "today", next.XPEarnedToday)
	if levelUp {
		s.log.Info("level up", "learner", learnerID, "level", next.CurrentLevel, "total_xp", next.TotalXP)
		award, err := gems.NewService(r).AwardLevel(ctx, learnerID, next.CurrentLevel, now)
		if err != nil {
			return nil, err
		}
		res.Gems = append(res.Gems, *award)
	}
	return res, nil
}

// CheckIn records activity for today and updates the daily streak.
func (s *Service) CheckIn(ctx context.Context, learnerID string) (*StreakResult, error) {
	var res *StreakResult
	err := s.withLearner(ctx, learnerID, func(r *store.Repo, now time.Time) error {
		var err error
		res, err = s.checkIn(ctx, r, learnerID, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("check in: %w", err)
	}
	return res, nil
}

func (s *Service) checkIn(ctx context.Context, r *store.Repo, learnerID string, now time.Time) (*StreakResult, error) {
	prev, err := r.StreakState(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	next, outcome := streak.Apply(prev, now)
	res := &StreakResult{State: next, Outcome: outcome, Changed: outcome != streak.Unchanged}
	if !res.Changed {
		return res, nil
	}
	if err := r.SaveStreakState(ctx, learnerID, next); err != nil {
		return nil, err
	}

	switch outcome {
	case streak.Reset:
		s.log.Info("streak reset", "learner", learnerID, "longest", next.LongestStreak)
	case streak.Frozen:
		s.log.Info("streak freeze consumed", "learner", learnerID, "streak", next.CurrentStreak)
	default:
		s.log.Debug("streak updated", "learner", learnerID, "outcome", outcome, "streak", next.CurrentStreak)
	}

	prevLen := 0
	if prev != nil && outcome != streak.Reset {
		prevLen = prev.CurrentStreak
	}
	if gems.CrossedStreakMilestone(prevLen, next.CurrentStreak) {
		award, err := gems.NewService(r).AwardStreak(ctx, learnerID, next.CurrentStreak, now)
		if err != nil {
			return nil, err
		}
		res.Gems = append(res.Gems, *award)
	}
	return res, nil
}

// UseFreeze spends the learner's banked freeze. Changed is false when none
// was available.
func (s *Service) UseFreeze(ctx context.Context, learnerID string) (*StreakResult, error) {
	return s.mutateStreak(ctx, learnerID, "use freeze", func(st streak.State, now time.Time) (streak.State, bool) {
		return streak.UseFreeze(st, now)
	})
}

// EarnFreeze banks a freeze. Changed is false when one is already banked.
func (s *Service) EarnFreeze(ctx context.Context, learnerID string) (*StreakResult, error) {
	return s.mutateStreak(ctx, learnerID, "earn freeze", func(st streak.State, _ time.Time) (streak.State, bool) {
		return streak.EarnFreeze(st)
	})
}

func (s *Service) mutateStreak(ctx context.Context, learnerID, op string, fn func(streak.State, time.Time) (streak.State, bool)) (*StreakResult, error) {
	var res *StreakResult
	err := s.withLearner(ctx, learnerID, func(r *store.Repo, now time.Time) error {
		prev, err := r.StreakState(ctx, learnerID)
		if err != nil {
			return err
		}
		var cur streak.State
		if prev != nil {
			cur = *prev
		}
		next, ok := fn(cur, now)
		res = &StreakResult{State: next, Outcome: streak.Unchanged, Changed: ok}
		if !ok {
			s.log.Debug("freeze refused", "learner", learnerID, "op", op)
			return nil
		}
		s.log.Info("freeze updated", "learner", learnerID, "op", op, "available", next.FreezeAvailable)
		return r.SaveStreakState(ctx, learnerID, next)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
