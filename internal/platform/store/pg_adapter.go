package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgQuerier struct {
	q pgxQuerier
	traced
}

func (p pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := p.q.Exec(ctx, sql, args...)
	p.emit(ctx, sql, args, start, err)
	return ct, err
}

func (p pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := p.q.Query(ctx, sql, args...)
	p.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (p pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return scanHook{
		row:   p.q.QueryRow(ctx, sql, args...),
		after: func(err error) { p.emit(ctx, sql, args, start, err) },
	}
}

// pgAdapter is the postgres TxRunner
type pgAdapter struct {
	pgQuerier
	pool *pgxpool.Pool
}

func newPGAdapter(pool *pgxpool.Pool, t traced) *pgAdapter {
	return &pgAdapter{pgQuerier: pgQuerier{q: pool, traced: t}, pool: pool}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{q: tx, traced: a.traced})
	})
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.pool.Ping(ctx) }

func (a *pgAdapter) Close() error { a.pool.Close(); return nil }

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}
