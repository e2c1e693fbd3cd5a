package repo

import (
	"context"
	"sync"

	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/paging"
	"biasdb/internal/services/api/entries/domain"
)

// Memory keeps entries in insertion order behind a mutex
// a unique hash index stands in for the sql constraint
type Memory[E domain.Entry] struct {
	mu sync.Mutex
	st memState[E]
}

type memState[E domain.Entry] struct {
	order []string
	rows  map[string]E
}

// NewMemory returns an empty in process store
func NewMemory[E domain.Entry]() *Memory[E] {
	return &Memory[E]{st: memState[E]{rows: map[string]E{}}}
}

// Repo implements Unit, every call takes the lock on its own
func (m *Memory[E]) Repo() Repo[E] { return lockedMem[E]{m: m} }

// Tx runs fn under the lock and restores the prior state when fn fails
func (m *Memory[E]) Tx(_ context.Context, fn func(Repo[E]) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.st.clone()
	if err := fn(&m.st); err != nil {
		m.st = snap
		return err
	}
	return nil
}

// Len reports how many entries are stored
func (m *Memory[E]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.order)
}

type lockedMem[E domain.Entry] struct{ m *Memory[E] }

func (l lockedMem[E]) FindByHash(ctx context.Context, hash string) (E, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.st.FindByHash(ctx, hash)
}

func (l lockedMem[E]) Insert(ctx context.Context, e E) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.st.Insert(ctx, e)
}

func (l lockedMem[E]) List(ctx context.Context, f domain.Filter, w paging.Window) ([]E, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.st.List(ctx, f, w)
}

func (l lockedMem[E]) Update(ctx context.Context, e E) (E, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.st.Update(ctx, e)
}

func (l lockedMem[E]) Delete(ctx context.Context, hash string) (E, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.st.Delete(ctx, hash)
}

func (s *memState[E]) clone() memState[E] {
	c := memState[E]{
		order: append([]string(nil), s.order...),
		rows:  make(map[string]E, len(s.rows)),
	}
	for k, v := range s.rows {
		c.rows[k] = v
	}
	return c
}

func (s *memState[E]) FindByHash(_ context.Context, hash string) (E, error) {
	e, ok := s.rows[hash]
	if !ok {
		var zero E
		return zero, perr.ErrNotFound
	}
	return e, nil
}

func (s *memState[E]) Insert(_ context.Context, e E) error {
	h := e.EntryHash()
	if _, ok := s.rows[h]; ok {
		return perr.DuplicateKeyf("hash %s already stored", h)
	}
	s.rows[h] = e
	s.order = append(s.order, h)
	return nil
}

func (s *memState[E]) List(_ context.Context, f domain.Filter, w paging.Window) ([]E, error) {
	out := make([]E, 0)
	skipped := 0
	for _, h := range s.order {
		if w.Limit > 0 && len(out) >= w.Limit {
			break
		}
		e := s.rows[h]
		if !match(e, f) {
			continue
		}
		if skipped < w.Skip {
			skipped++
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *memState[E]) Update(_ context.Context, e E) (E, error) {
	h := e.EntryHash()
	if _, ok := s.rows[h]; !ok {
		var zero E
		return zero, perr.ErrNotFound
	}
	s.rows[h] = e
	return e, nil
}

func (s *memState[E]) Delete(_ context.Context, hash string) (E, error) {
	e, ok := s.rows[hash]
	if !ok {
		var zero E
		return zero, perr.ErrNotFound
	}
	delete(s.rows, hash)
	for i, h := range s.order {
		if h == hash {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return e, nil
}

func match[E domain.Entry](e E, f domain.Filter) bool {
	if f.Hash != "" && e.EntryHash() != f.Hash {
		return false
	}
	if f.BiasType != "" && e.EntryBiasType() != f.BiasType {
		return false
	}
	if f.URL != "" && e.EntryURL() != f.URL {
		return false
	}
	return true
}
