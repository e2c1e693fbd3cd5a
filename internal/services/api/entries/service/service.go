// Package service contains the content addressed entry workflows
package service

import (
	"context"
	"time"

	"biasdb/internal/core/digest"
	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/metrics"
	lumnet "biasdb/internal/platform/net"
	"biasdb/internal/platform/paging"
	"biasdb/internal/services/api/entries/domain"
	"biasdb/internal/services/api/entries/repo"
	jdom "biasdb/internal/services/journal/domain"
)

// Service defines the service contract for one entry kind
type Service[E domain.Entry, I domain.Input, P domain.Patch] interface {
	domain.ServicePort[E, I, P]
}

// Options carries the optional collaborators of a Svc
type Options struct {
	// Hasher derives keys, nil means digest.Default
	Hasher digest.Hasher

	// Recorder receives mutation events, nil means drop them
	Recorder jdom.RecorderPort

	// Ops counts operations, nil disables metrics
	Ops *metrics.Ops
}

// Svc implements Service over a repo unit
type Svc[E domain.Entry, I domain.Input, P domain.Patch] struct {
	kind   domain.Kind[E, I, P]
	unit   repo.Unit[E]
	hasher digest.Hasher
	rec    jdom.RecorderPort
	ops    *metrics.Ops
}

// New creates a store for kind k on unit
func New[E domain.Entry, I domain.Input, P domain.Patch](k domain.Kind[E, I, P], unit repo.Unit[E], opt Options) *Svc[E, I, P] {
	if unit == nil {
		panic("entries.Service requires a non nil repo unit")
	}
	rec := opt.Recorder
	if rec == nil {
		rec = jdom.Nop{}
	}
	return &Svc[E, I, P]{
		kind:   k,
		unit:   unit,
		hasher: digest.Or(opt.Hasher),
		rec:    rec,
		ops:    opt.Ops,
	}
}

// Create stores a new entry under the digest of its text
// an occupied digest is a Conflict when the stored text matches and a HashCollision otherwise
func (s *Svc[E, I, P]) Create(ctx context.Context, in I) (out E, err error) {
	defer s.observe(ctx, "create", time.Now(), &err)

	text := in.InputText()
	hash := s.hasher.Digest(text)
	e := s.kind.Build(in, hash)

	err = s.unit.Tx(ctx, func(r repo.Repo[E]) error {
		if err := s.vacant(ctx, r, hash, text); err != nil {
			return err
		}
		return r.Insert(ctx, e)
	})
	if perr.IsUniqueViolation(err) {
		// lost an insert race, classify against whoever won in a fresh tx
		err = s.unit.Tx(ctx, func(r repo.Repo[E]) error {
			if cerr := s.vacant(ctx, r, hash, text); cerr != nil {
				return cerr
			}
			return s.conflict()
		})
	}
	if err != nil {
		return out, err
	}

	s.record(ctx, jdom.OpCreate, hash)
	return e, nil
}

// Read lists entries matching q in storage order
func (s *Svc[E, I, P]) Read(ctx context.Context, q domain.Query) (out []E, err error) {
	defer s.observe(ctx, "read", time.Now(), &err)

	f := q.Filter
	if q.Text != "" {
		h := s.hasher.Digest(q.Text)
		if f.Hash != "" && f.Hash != h {
			return []E{}, nil
		}
		f.Hash = h
	}
	w := q.Window
	if w.Limit <= 0 {
		w.Limit = paging.DefaultLimit
	}
	err = s.unit.Tx(ctx, func(r repo.Repo[E]) error {
		out, err = r.List(ctx, f, w)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update patches the entry stored under the digest of locator
func (s *Svc[E, I, P]) Update(ctx context.Context, locator string, p P) (out E, err error) {
	defer s.observe(ctx, "update", time.Now(), &err)

	hash := s.hasher.Digest(locator)
	err = s.unit.Tx(ctx, func(r repo.Repo[E]) error {
		cur, err := s.locate(ctx, r, hash, locator)
		if err != nil {
			return err
		}
		next, err := s.kind.Apply(cur, p)
		if err != nil {
			return err
		}
		out, err = r.Update(ctx, next)
		return s.missing(err)
	})
	if err != nil {
		var zero E
		return zero, err
	}

	s.record(ctx, jdom.OpUpdate, hash)
	return out, nil
}

// Delete removes the entry stored under the digest of locator and returns it
func (s *Svc[E, I, P]) Delete(ctx context.Context, locator string) (out E, err error) {
	defer s.observe(ctx, "delete", time.Now(), &err)

	hash := s.hasher.Digest(locator)
	err = s.unit.Tx(ctx, func(r repo.Repo[E]) error {
		if _, err := s.locate(ctx, r, hash, locator); err != nil {
			return err
		}
		out, err = r.Delete(ctx, hash)
		return s.missing(err)
	})
	if err != nil {
		var zero E
		return zero, err
	}

	s.record(ctx, jdom.OpDelete, hash)
	return out, nil
}

// vacant checks that hash is free for text
func (s *Svc[E, I, P]) vacant(ctx context.Context, r repo.Repo[E], hash, text string) error {
	cur, err := r.FindByHash(ctx, hash)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return nil
	case err != nil:
		return err
	case cur.EntryText() == text:
		return s.conflict()
	default:
		return s.collision(ctx, hash)
	}
}

// locate finds the entry for locator, a digest held by another text does not count as found
func (s *Svc[E, I, P]) locate(ctx context.Context, r repo.Repo[E], hash, locator string) (E, error) {
	cur, err := r.FindByHash(ctx, hash)
	if err != nil {
		return cur, s.missing(err)
	}
	if cur.EntryText() != locator {
		return cur, s.collision(ctx, hash)
	}
	return cur, nil
}

func (s *Svc[E, I, P]) missing(err error) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("%s not found", s.kind.Name)
	}
	return err
}

func (s *Svc[E, I, P]) conflict() error {
	return perr.Conflictf("%s already exists", s.kind.Name)
}

func (s *Svc[E, I, P]) collision(ctx context.Context, hash string) error {
	logger.C(ctx).Warn().
		Str("kind", s.kind.Name).
		Str("hash", hash).
		Msg("hash collision between distinct texts")
	return perr.HashCollisionf("%s hash %s is held by a different text", s.kind.Name, hash)
}

func (s *Svc[E, I, P]) record(ctx context.Context, op jdom.Op, hash string) {
	s.rec.Record(ctx, jdom.Event{
		Kind:      s.kind.Name,
		Op:        op,
		Hash:      hash,
		RequestID: lumnet.RequestID(ctx),
		At:        time.Now().UTC(),
	})
}

func (s *Svc[E, I, P]) observe(ctx context.Context, op string, start time.Time, errp *error) {
	outcome := Outcome(*errp)
	s.ops.Observe(s.kind.Name, op, outcome, start)
	if outcome == metrics.OutcomeError {
		logger.C(ctx).Error().Err(*errp).Str("kind", s.kind.Name).Str("op", op).Msg("entry store failed")
	}
}

// Outcome classifies err for metrics
func Outcome(err error) metrics.Outcome {
	if err == nil {
		return metrics.OutcomeOK
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeConflict, perr.ErrorCodeDuplicateKey:
		return metrics.OutcomeConflict
	case perr.ErrorCodeHashCollision:
		return metrics.OutcomeCollision
	case perr.ErrorCodeNotFound:
		return metrics.OutcomeNotFound
	case perr.ErrorCodeValidation, perr.ErrorCodeJSON, perr.ErrorCodeInvalidArgument:
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}
