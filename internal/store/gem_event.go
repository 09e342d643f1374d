package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// GemEventData captures one awarded gem.
type GemEventData struct {
	Timestamp time.Time
	LearnerID string
	GemType   string
	Rarity    string
	Reason    string
}

// GemEventRecord is a GemEventData read back with its sequence.
type GemEventRecord struct {
	GemEventData
	Sequence int64
}

func (r *Repo) AppendGemEvent(ctx context.Context, data GemEventData) error {
	seqNum, err := r.nextSequence(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(GemEventsTable.Name).
		Columns("sequence", "timestamp", "learner_id", "gem_type", "rarity", "reason").
		Values(seqNum, data.Timestamp.UTC(), data.LearnerID, data.GemType, data.Rarity, data.Reason).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save gem event: %w", err)
	}
	return nil
}

// QueryGemEvents returns the learner's gems newest first.
func (r *Repo) QueryGemEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]GemEventRecord, error) {
	sel := builder.Select("sequence", "timestamp", "learner_id", "gem_type", "rarity", "reason").
		From(builder.Table(GemEventsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("sequence"))
	query, args := opts.apply(sel).Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query gem events: %w", err)
	}
	defer rows.Close()

	var records []GemEventRecord
	for rows.Next() {
		var e GemEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.LearnerID, &e.GemType, &e.Rarity, &e.Reason); err != nil {
			return nil, fmt.Errorf("scan gem event: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		records = append(records, e)
	}
	return records, rows.Err()
}

// GemCounts returns the learner's gem count per type and the total.
func (r *Repo) GemCounts(ctx context.Context, learnerID string) (map[string]int, int, error) {
	query, args := builder.Select("gem_type", entsql.Count("*")).
		From(builder.Table(GemEventsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		GroupBy("gem_type").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query gem counts: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			gemType string
			n       int
		)
		if err := rows.Scan(&gemType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan gem counts: %w", err)
		}
		byType[gemType] = n
		total += n
	}
	return byType, total, rows.Err()
}
