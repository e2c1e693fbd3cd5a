package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"biasdb/internal/platform/store/trace"

	"github.com/jackc/pgx/v5"
)

// traced reports each statement to an optional tracer
type traced struct {
	tracer trace.QueryTracer
	slowMs int
}

func (t traced) emit(ctx context.Context, q string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	// an empty lookup is not a failure
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		err = nil
	}
	us := time.Since(start).Microseconds()
	t.tracer.OnQuery(ctx, trace.QueryEvent{
		SQL:       q,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      trace.IsSlow(us, t.slowMs),
	})
}

// scanHook hands the Scan result to after
type scanHook struct {
	row   interface{ Scan(...any) error }
	after func(error)
}

func (s scanHook) Scan(dst ...any) error {
	err := s.row.Scan(dst...)
	s.after(err)
	return err
}
