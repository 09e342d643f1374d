package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// EmotionEventData captures one emotion detection.
type EmotionEventData struct {
	Timestamp       time.Time
	LearnerID       string
	SessionID       string
	Emotion         string
	Confidence      float64
	SuggestedAction string
	Source          string
}

// EmotionEventRecord is an EmotionEventData read back with its sequence.
type EmotionEventRecord struct {
	EmotionEventData
	Sequence int64
}

func (r *Repo) AppendEmotionEvent(ctx context.Context, data EmotionEventData) error {
	seqNum, err := r.nextSequence(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(EmotionEventsTable.Name).
		Columns("sequence", "timestamp", "learner_id", "session_id", "emotion",
			"confidence", "suggested_action", "source").
		Values(seqNum, data.Timestamp.UTC(), data.LearnerID, data.SessionID, data.Emotion,
			data.Confidence, data.SuggestedAction, data.Source).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save emotion event: %w", err)
	}
	return nil
}

// QueryEmotionEvents returns the learner's detections newest first.
func (r *Repo) QueryEmotionEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]EmotionEventRecord, error) {
	sel := builder.Select("sequence", "timestamp", "learner_id", "session_id", "emotion",
		"confidence", "suggested_action", "source").
		From(builder.Table(EmotionEventsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("sequence"))
	query, args := opts.apply(sel).Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query emotion events: %w", err)
	}
	defer rows.Close()

	var records []EmotionEventRecord
	for rows.Next() {
		var e EmotionEventRecord
		err := rows.Scan(&e.Sequence, &e.Timestamp, &e.LearnerID, &e.SessionID, &e.Emotion,
			&e.Confidence, &e.SuggestedAction, &e.Source)
		if err != nil {
			return nil, fmt.Errorf("scan emotion event: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		records = append(records, e)
	}
	return records, rows.Err()
}
