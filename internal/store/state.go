package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/adaptly/internal/progression"
	"github.com/abhisek/adaptly/internal/streak"
)

// ProgressionState returns the learner's XP state, or nil before the first award.
func (r *Repo) ProgressionState(ctx context.Context, learnerID string) (*progression.State, error) {
	query, args := builder.Select("total_xp", "current_level", "xp_to_next_level", "xp_earned_today", "last_xp_date").
		From(builder.Table(ProgressionStatesTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()

	var (
		s    progression.State
		last sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, query, args...).Scan(
		&s.TotalXP, &s.CurrentLevel, &s.XPToNextLevel, &s.XPEarnedToday, &last,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progression: %w", err)
	}
	if t := timePtr(last); t != nil {
		s.LastXPDate = *t
	}
	return &s, nil
}

// SaveProgressionState upserts the learner's XP state.
func (r *Repo) SaveProgressionState(ctx context.Context, learnerID string, s progression.State) error {
	last := sql.NullTime{}
	if !s.LastXPDate.IsZero() {
		last = nullTime(&s.LastXPDate)
	}
	query, args := builder.Insert(ProgressionStatesTable.Name).
		Columns("learner_id", "total_xp", "current_level", "xp_to_next_level", "xp_earned_today", "last_xp_date").
		Values(learnerID, s.TotalXP, s.CurrentLevel, s.XPToNextLevel, s.XPEarnedToday, last).
		OnConflict(
			entsql.ConflictColumns("learner_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save progression: %w", err)
	}
	return nil
}

// StreakState returns the learner's streak, or nil before the first check-in.
func (r *Repo) StreakState(ctx context.Context, learnerID string) (*streak.State, error) {
	query, args := builder.Select("current_streak", "longest_streak", "last_activity_date", "freeze_available", "freeze_used_at").
		From(builder.Table(StreakStatesTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()

	var (
		s        streak.State
		last     sql.NullTime
		freezeAt sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, query, args...).Scan(
		&s.CurrentStreak, &s.LongestStreak, &last, &s.FreezeAvailable, &freezeAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}
	s.LastActivityDate = timePtr(last)
	s.FreezeUsedAt = timePtr(freezeAt)
	return &s, nil
}

// SaveStreakState upserts the learner's streak.
func (r *Repo) SaveStreakState(ctx context.Context, learnerID string, s streak.State) error {
	query, args := builder.Insert(StreakStatesTable.Name).
		Columns("learner_id", "current_streak", "longest_streak", "last_activity_date", "freeze_available", "freeze_used_at").
		Values(learnerID, s.CurrentStreak, s.LongestStreak, nullTime(s.LastActivityDate), s.FreezeAvailable, nullTime(s.FreezeUsedAt)).
		OnConflict(
			entsql.ConflictColumns("learner_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
