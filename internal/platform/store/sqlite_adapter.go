package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"biasdb/internal/platform/store/sqlite"
)

// sqlQuerier is what *sql.DB and *sql.Tx share
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type liteQuerier struct {
	q sqlQuerier
	traced
}

func (l liteQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := l.q.ExecContext(ctx, q, args...)
	l.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteTag{res}, nil
}

func (l liteQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := l.q.QueryContext(ctx, q, args...)
	l.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{rs}, nil
}

func (l liteQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	return scanHook{
		row:   l.q.QueryRowContext(ctx, q, args...),
		after: func(err error) { l.emit(ctx, q, args, start, err) },
	}
}

// liteAdapter is the sqlite TxRunner, same surface as pgAdapter
type liteAdapter struct {
	liteQuerier
	l *sqlite.Lite
}

func newLiteAdapter(l *sqlite.Lite, t traced) *liteAdapter {
	return &liteAdapter{liteQuerier: liteQuerier{q: l.DB, traced: t}, l: l}
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteQuerier{q: tx, traced: a.traced}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

type liteRows struct{ *sql.Rows }

func (r liteRows) Close() { _ = r.Rows.Close() }

func (r liteRows) Columns() []string {
	cols, _ := r.Rows.Columns()
	return cols
}

// liteTag prints like a pg command tag
type liteTag struct{ res sql.Result }

func (t liteTag) RowsAffected() int64 {
	n, _ := t.res.RowsAffected()
	return n
}

func (t liteTag) String() string { return fmt.Sprintf("ROWS %d", t.RowsAffected()) }
