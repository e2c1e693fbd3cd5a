// Package repo persists journal events in clickhouse
package repo

import (
	"context"
	"time"

	"biasdb/internal/platform/store"
	"biasdb/internal/services/journal/domain"
)

// Table holds the event rows
const Table = "entry_events"

// Repo defines the journal storage contract
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, evs []domain.Event) error
	Recent(ctx context.Context, kind string, limit int) ([]domain.Event, error)
}

// CH implements Repo on the clickhouse seam
type CH struct{ db store.Clickhouse }

// NewCH binds the journal to db
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("journal repo requires a non nil clickhouse seam")
	}
	return &CH{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS entry_events (
    at         DateTime64(3, 'UTC'),
    kind       LowCardinality(String),
    op         LowCardinality(String),
    hash       String,
    request_id String
)
ENGINE = MergeTree
ORDER BY (kind, at)
`

// EnsureSchema creates the events table when missing
func (r *CH) EnsureSchema(ctx context.Context) error {
	return r.db.Exec(ctx, schema)
}

// Append writes evs as one batch
func (r *CH) Append(ctx context.Context, evs []domain.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(evs))
	for _, e := range evs {
		rows = append(rows, []any{e.At, e.Kind, string(e.Op), e.Hash, e.RequestID})
	}
	return r.db.Insert(ctx, Table, rows)
}

// Recent returns the newest events first, kind "" matches every kind
func (r *CH) Recent(ctx context.Context, kind string, limit int) ([]domain.Event, error) {
	const sql = `
SELECT at, kind, op, hash, request_id
FROM entry_events
WHERE (? = '' OR kind = ?)
ORDER BY at DESC
LIMIT ?
`
	rows, err := r.db.Query(ctx, sql, kind, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Event, 0)
	for rows.Next() {
		var (
			at                     time.Time
			k, op, hash, requestID string
		)
		if err := rows.Scan(&at, &k, &op, &hash, &requestID); err != nil {
			return nil, err
		}
		out = append(out, domain.Event{Kind: k, Op: domain.Op(op), Hash: hash, RequestID: requestID, At: at.UTC()})
	}
	return out, rows.Err()
}
