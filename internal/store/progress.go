package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ExerciseProgress is a learner's scheduling and mastery record for one exercise.
type ExerciseProgress struct {
	LearnerID      string
	ExerciseID     string
	Interval       int
	EaseFactor     float64
	Repetitions    int
	NextReviewDate *time.Time // nil until the first review is scheduled
	LastAttemptAt  *time.Time
	Attempts       int
	CorrectCount   int
	Streak         int
	SpeedScores    []float64
	UpdatedAt      time.Time
}

var progressColumns = []string{
	"learner_id", "exercise_id", "interval", "ease_factor", "repetitions", "next_review_date",
	"last_attempt_at", "attempts", "correct_count", "streak", "speed_scores", "updated_at",
}

func scanProgress(scan func(dest ...any) error) (*ExerciseProgress, error) {
	var (
		p      ExerciseProgress
		next   sql.NullTime
		last   sql.NullTime
		speeds sql.NullString
	)
	err := scan(
		&p.LearnerID, &p.ExerciseID, &p.Interval, &p.EaseFactor, &p.Repetitions, &next,
		&last, &p.Attempts, &p.CorrectCount, &p.Streak, &speeds, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(speeds, &p.SpeedScores); err != nil {
		return nil, err
	}
	p.NextReviewDate = timePtr(next)
	p.LastAttemptAt = timePtr(last)
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// ExerciseProgress returns the record for one exercise, or nil if the learner
// has never attempted it.
func (r *Repo) ExerciseProgress(ctx context.Context, learnerID, exerciseID string) (*ExerciseProgress, error) {
	query, args := builder.Select(progressColumns...).
		From(builder.Table(ExerciseProgressTable.Name)).
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.EQ("exercise_id", exerciseID),
		)).
		Query()

	p, err := scanProgress(r.q.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query exercise progress: %w", err)
	}
	return p, nil
}

// ListExerciseProgress returns every exercise record for the learner ordered by exercise id.
func (r *Repo) ListExerciseProgress(ctx context.Context, learnerID string) ([]ExerciseProgress, error) {
	query, args := builder.Select(progressColumns...).
		From(builder.Table(ExerciseProgressTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy("exercise_id").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exercise progress: %w", err)
	}
	defer rows.Close()

	var out []ExerciseProgress
	for rows.Next() {
		p, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan exercise progress: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// SaveExerciseProgress inserts or replaces the record keyed by learner and exercise.
func (r *Repo) SaveExerciseProgress(ctx context.Context, p *ExerciseProgress) error {
	speeds, err := marshalJSON(p.SpeedScores)
	if err != nil {
		return fmt.Errorf("encode speed scores: %w", err)
	}
	query, args := builder.Insert(ExerciseProgressTable.Name).
		Columns(progressColumns...).
		Values(
			p.LearnerID, p.ExerciseID, p.Interval, p.EaseFactor, p.Repetitions, nullTime(p.NextReviewDate),
			nullTime(p.LastAttemptAt), p.Attempts, p.CorrectCount, p.Streak, speeds, p.UpdatedAt.UTC(),
		).
		OnConflict(
			entsql.ConflictColumns("learner_id", "exercise_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save exercise progress: %w", err)
	}
	return nil
}
