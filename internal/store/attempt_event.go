package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AttemptEventData captures one answered exercise.
type AttemptEventData struct {
	Timestamp  time.Time
	LearnerID  string
	SessionID  string
	ExerciseID string
	Correct    bool
	TimeMs     int
	ExpectedMs int
	HintsUsed  int
	Quality    int
}

// AttemptEventRecord is an AttemptEventData read back with its sequence.
type AttemptEventRecord struct {
	AttemptEventData
	Sequence int64
}

// AttemptStats summarizes a learner's attempt history.
type AttemptStats struct {
	Total    int
	Correct  int
	Sessions int
}

func (r *Repo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.nextSequence(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(AttemptEventsTable.Name).
		Columns("sequence", "timestamp", "learner_id", "session_id", "exercise_id",
			"correct", "time_ms", "expected_ms", "hints_used", "quality").
		Values(seqNum, data.Timestamp.UTC(), data.LearnerID, data.SessionID, data.ExerciseID,
			data.Correct, data.TimeMs, data.ExpectedMs, data.HintsUsed, data.Quality).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

// SessionAttempts returns a session's attempts oldest first.
func (r *Repo) SessionAttempts(ctx context.Context, learnerID, sessionID string) ([]AttemptEventRecord, error) {
	query, args := builder.Select("sequence", "timestamp", "learner_id", "session_id", "exercise_id",
		"correct", "time_ms", "expected_ms", "hints_used", "quality").
		From(builder.Table(AttemptEventsTable.Name)).
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.EQ("session_id", sessionID),
		)).
		OrderBy("sequence").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session attempts: %w", err)
	}
	defer rows.Close()

	var records []AttemptEventRecord
	for rows.Next() {
		var e AttemptEventRecord
		err := rows.Scan(&e.Sequence, &e.Timestamp, &e.LearnerID, &e.SessionID, &e.ExerciseID,
			&e.Correct, &e.TimeMs, &e.ExpectedMs, &e.HintsUsed, &e.Quality)
		if err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		records = append(records, e)
	}
	return records, rows.Err()
}

// AttemptStats counts the learner's attempts, correct answers and distinct sessions.
func (r *Repo) AttemptStats(ctx context.Context, learnerID string) (AttemptStats, error) {
	query, args := builder.Select("session_id", entsql.Count("*"), entsql.Sum("correct")).
		From(builder.Table(AttemptEventsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		GroupBy("session_id").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return AttemptStats{}, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var stats AttemptStats
	for rows.Next() {
		var (
			session        string
			total, correct int
		)
		if err := rows.Scan(&session, &total, &correct); err != nil {
			return AttemptStats{}, fmt.Errorf("scan attempt stats: %w", err)
		}
		stats.Sessions++
		stats.Total += total
		stats.Correct += correct
	}
	return stats, rows.Err()
}
