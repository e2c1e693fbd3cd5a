package store

import (
	"context"
	"fmt"

	perr "biasdb/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return fmt.Errorf("store: %d rows affected, want 1", n)
	}
	return nil
}

// Scalar reads the first column of the first row
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// each runs sql and calls fn per row until fn fails or rows run out
func each(ctx context.Context, q RowQuerier, sql string, args []any, fn func(Row) error) error {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Many maps every row with scan, an empty result is a non nil empty slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	out := make([]T, 0)
	err := each(ctx, q, sql, args, func(r Row) error {
		v, err := scan(r)
		out = append(out, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// One maps a single row, none is perr.ErrNotFound and more than one is an error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var (
		v T
		n int
	)
	err := each(ctx, q, sql, args, func(r Row) error {
		if n++; n > 1 {
			return fmt.Errorf("store: more than one row for %q", sql)
		}
		var err error
		v, err = scan(r)
		return err
	})
	var zero T
	switch {
	case err != nil:
		return zero, err
	case n == 0:
		return zero, perr.ErrNotFound
	}
	return v, nil
}
