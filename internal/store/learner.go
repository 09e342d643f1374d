package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Learner is the persisted learner profile.
type Learner struct {
	ID                   string
	DisplayName          string
	Age                  int
	LearningStyle        string
	Interests            []string
	PreferredMethod      string
	EnergyLevel          string
	TimeAvailableMinutes *int
	LastPresentationID   string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

var learnerColumns = []string{
	"id", "display_name", "age", "learning_style", "interests", "preferred_method",
	"energy_level", "time_available_minutes", "last_presentation_id", "created_at", "updated_at",
}

// Learner returns the learner profile, or nil if it does not exist.
func (r *Repo) Learner(ctx context.Context, id string) (*Learner, error) {
	query, args := builder.Select(learnerColumns...).
		From(builder.Table(LearnersTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		l         Learner
		interests sql.NullString
		avail     sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, query, args...).Scan(
		&l.ID, &l.DisplayName, &l.Age, &l.LearningStyle, &interests, &l.PreferredMethod,
		&l.EnergyLevel, &avail, &l.LastPresentationID, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query learner: %w", err)
	}
	if err := unmarshalJSON(interests, &l.Interests); err != nil {
		return nil, err
	}
	l.TimeAvailableMinutes = intPtr(avail)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}

// SaveLearner inserts or replaces the learner profile.
func (r *Repo) SaveLearner(ctx context.Context, l *Learner) error {
	interests, err := marshalJSON(l.Interests)
	if err != nil {
		return fmt.Errorf("encode interests: %w", err)
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = l.UpdatedAt
	}
	query, args := builder.Insert(LearnersTable.Name).
		Columns(learnerColumns...).
		Values(
			l.ID, l.DisplayName, l.Age, l.LearningStyle, interests, l.PreferredMethod,
			l.EnergyLevel, nullInt(l.TimeAvailableMinutes), l.LastPresentationID, l.CreatedAt.UTC(), l.UpdatedAt.UTC(),
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("display_name")
				u.SetExcluded("age")
				u.SetExcluded("learning_style")
				u.SetExcluded("interests")
				u.SetExcluded("preferred_method")
				u.SetExcluded("energy_level")
				u.SetExcluded("time_available_minutes")
				u.SetExcluded("last_presentation_id")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save learner: %w", err)
	}
	return nil
}

// Learners lists all learner ids in creation order.
func (r *Repo) Learners(ctx context.Context) ([]string, error) {
	query, args := builder.Select("id").
		From(builder.Table(LearnersTable.Name)).
		OrderBy("created_at", "id").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query learners: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
