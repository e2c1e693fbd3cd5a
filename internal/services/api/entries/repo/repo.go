// Package repo stores entries in sql or in process memory
package repo

import (
	"context"

	"biasdb/internal/platform/paging"
	"biasdb/internal/services/api/entries/domain"
)

// Repo is the per kind storage contract
// lookups by hash return perr.ErrNotFound when absent
type Repo[E domain.Entry] interface {
	FindByHash(ctx context.Context, hash string) (E, error)
	// Insert fails with a DuplicateKey error when hash is taken
	Insert(ctx context.Context, e E) error
	List(ctx context.Context, f domain.Filter, w paging.Window) ([]E, error)
	// Update writes the mutable columns of e at e's hash and returns the stored row
	Update(ctx context.Context, e E) (E, error)
	// Delete removes the row at hash and returns it
	Delete(ctx context.Context, hash string) (E, error)
}

// Unit hands out a repo and runs grouped work atomically
type Unit[E domain.Entry] interface {
	Repo() Repo[E]
	Tx(ctx context.Context, fn func(r Repo[E]) error) error
}
