// Package module wires the entry event journal and exposes its ports
package module

import (
	"context"

	"biasdb/internal/modkit"
	"biasdb/internal/modkit/httpkit"
	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/metrics"
	dom "biasdb/internal/services/journal/domain"
	jhttp "biasdb/internal/services/journal/http"
	"biasdb/internal/services/journal/repo"
	"biasdb/internal/services/journal/service"
)

// Module defines the journal module
// without clickhouse it records nothing and mounts no routes
type Module struct {
	built   modkit.Built
	enabled bool
	ports   Ports
}

// idle is the worker used when the journal is off
type idle struct{}

func (idle) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// New constructs the journal module, overrides win over config when non zero
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.Buffer != 0 {
		opts.Buffer = overrides.Buffer
	}
	if overrides.Flush != 0 {
		opts.Flush = overrides.Flush
	}

	m := &Module{built: modkit.Build(modkit.WithName("journal"), modkit.WithPrefix("/events"))}
	if deps.CH == nil {
		m.ports = Ports{Recorder: dom.Nop{}, Worker: idle{}}
		return m
	}

	svc := service.New(repo.NewCH(deps.CH), service.Config{
		Buffer: opts.Buffer,
		Flush:  opts.Flush,
	}, metrics.NewCounter(deps.Metrics, "journal_dropped_total", "Journal events dropped because the queue was full"))

	logger.Named("journal").Info().
		Int("buffer", opts.Buffer).
		Dur("flush", opts.Flush).
		Msg("event journal enabled")

	m.enabled = true
	m.ports = Ports{Recorder: svc, Reader: svc, Worker: svc}
	return m
}

// Enabled reports whether events reach clickhouse
func (m *Module) Enabled() bool { return m.enabled }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the route prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// MountRoutes mounts GET /events when the journal is enabled
func (m *Module) MountRoutes(r httpkit.Router) {
	if !m.enabled {
		return
	}
	m.built.Mount(r, func(rr httpkit.Router) {
		jhttp.Register(rr, m.ports.Reader)
	})
}
