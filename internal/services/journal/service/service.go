// Package service buffers entry events and flushes them to the journal
package service

import (
	"context"
	"time"

	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/metrics"
	"biasdb/internal/services/journal/domain"
	"biasdb/internal/services/journal/repo"
)

const (
	defaultBuffer = 256
	defaultFlush  = 2 * time.Second

	// DefaultRecent and MaxRecent bound the events listing
	DefaultRecent = 100
	MaxRecent     = 1000
)

// Config sizes the recorder
type Config struct {
	// Buffer is both the queue depth and the flush batch size
	Buffer int
	// Flush is the longest a buffered event waits
	Flush time.Duration
}

// Svc records events without blocking and drains them in Run
type Svc struct {
	repo    repo.Repo
	cfg     Config
	queue   chan domain.Event
	dropped *metrics.Counter
}

// New creates a recorder over r, dropped may be nil
func New(r repo.Repo, cfg Config, dropped *metrics.Counter) *Svc {
	if r == nil {
		panic("journal.Service requires a non nil Repo")
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}
	if cfg.Flush <= 0 {
		cfg.Flush = defaultFlush
	}
	return &Svc{
		repo:    r,
		cfg:     cfg,
		queue:   make(chan domain.Event, cfg.Buffer),
		dropped: dropped,
	}
}

// Record queues ev, a full queue drops it
func (s *Svc) Record(ctx context.Context, ev domain.Event) {
	select {
	case s.queue <- ev:
	default:
		s.dropped.Inc()
		logger.C(ctx).Warn().Str("kind", ev.Kind).Str("op", string(ev.Op)).Msg("journal queue full, event dropped")
	}
}

// Recent lists the newest events, limit 0 means DefaultRecent
func (s *Svc) Recent(ctx context.Context, q domain.RecentQuery) ([]domain.Event, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultRecent
	}
	if limit > MaxRecent {
		limit = MaxRecent
	}
	return s.repo.Recent(ctx, q.Kind, limit)
}

// Run ensures the schema then flushes batches until ctx ends
// events still queued at shutdown get one last flush
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("journal")
	if err := s.repo.EnsureSchema(ctx); err != nil {
		log.Error().Err(err).Msg("journal schema setup failed")
	}

	ticker := time.NewTicker(s.cfg.Flush)
	defer ticker.Stop()
	batch := make([]domain.Event, 0, s.cfg.Buffer)

	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := s.repo.Append(ctx, batch); err != nil {
			log.Error().Err(err).Int("events", len(batch)).Msg("journal flush failed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case ev := <-s.queue:
					batch = append(batch, ev)
				default:
					break drain
				}
			}
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			flush(fctx)
			cancel()
			return ctx.Err()
		case ev := <-s.queue:
			batch = append(batch, ev)
			if len(batch) >= s.cfg.Buffer {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		}
	}
}
