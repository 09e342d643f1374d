package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// builder renders statements for the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// Repo reads and writes learner state and events. A Repo obtained from
// Store.WithTx is only valid inside the transaction callback.
type Repo struct {
	q   querier
	seq *sequenceCounter
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// apply adds the opts filters to an event query.
func (o QueryOpts) apply(s *entsql.Selector) *entsql.Selector {
	if o.Limit > 0 {
		s.Limit(o.Limit)
	}
	if o.After > 0 {
		s.Where(entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		s.Where(entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		s.Where(entsql.GTE("timestamp", o.From))
	}
	if !o.To.IsZero() {
		s.Where(entsql.LTE("timestamp", o.To))
	}
	return s
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error
	SessionAttempts(ctx context.Context, learnerID, sessionID string) ([]AttemptEventRecord, error)
	AppendEmotionEvent(ctx context.Context, data EmotionEventData) error
	QueryEmotionEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]EmotionEventRecord, error)
	AppendGemEvent(ctx context.Context, data GemEventData) error
	QueryGemEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]GemEventRecord, error)
	GemCounts(ctx context.Context, learnerID string) (map[string]int, int, error)
}

var _ EventRepo = (*Repo)(nil)

func (r *Repo) exec(ctx context.Context, query string, args []any) error {
	_, err := r.q.ExecContext(ctx, query, args...)
	return err
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalJSON(s sql.NullString, v any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s.String), v); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
