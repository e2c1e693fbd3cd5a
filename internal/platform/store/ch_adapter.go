package store

import (
	"context"
	"errors"

	"biasdb/internal/platform/store/ch"
)

// chSeam exposes *ch.CH as the Clickhouse seam
type chSeam struct{ *ch.CH }

func (c chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

// Ping follows the handshake with a SELECT so a wrong database name fails here
func (c chSeam) Ping(ctx context.Context) error {
	if c.CH == nil {
		return errors.New("store: nil clickhouse client")
	}
	if err := c.CH.Ping(ctx); err != nil {
		return err
	}
	rows, err := c.Query(ctx, "SELECT toUInt8(1)")
	if err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		return errors.Join(errors.New("store: clickhouse ping returned no rows"), rows.Err())
	}
	var one uint8
	return errors.Join(rows.Scan(&one), rows.Err())
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
