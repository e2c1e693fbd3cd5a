// Package repokit holds the sql seams entry repos are written against
package repokit

import (
	"context"
	"fmt"

	"biasdb/internal/platform/store"
)

type (
	// Queryer is the read and write surface a bound repo sees
	Queryer = store.RowQuerier

	// TxRunner adds transactions to Queryer
	TxRunner = store.TxRunner

	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// WithTx runs fn inside one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// Binder builds a repo over a Queryer, either the pool or an open tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds q and panics on a nil q
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// MustGuard panics when any configured backend fails its ping
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
