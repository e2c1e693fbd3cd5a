// Package module wires the report and feedback content stores into the API using modkit
package module

import (
	modkit "biasdb/internal/modkit"
	"biasdb/internal/modkit/httpkit"
	"biasdb/internal/modkit/repokit"
	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/metrics"
	"biasdb/internal/platform/store"
	"biasdb/internal/services/api/entries/domain"
	entrieshttp "biasdb/internal/services/api/entries/http"
	entriesrepo "biasdb/internal/services/api/entries/repo"
	entriessvc "biasdb/internal/services/api/entries/service"
)

// Module implements the modkit.Module interface for one entry kind
type Module struct {
	built    modkit.Built
	ports    any
	register func(httpkit.Router)
}

// NewReports constructs the reports module mounted at /reports
func NewReports(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return build(deps, domain.ReportKind, "/reports", opts)
}

// NewFeedback constructs the feedback module mounted at /feedback
func NewFeedback(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return build(deps, domain.FeedbackKind, "/feedback", opts)
}

func build[E domain.Entry, I domain.Input, P domain.Patch](
	deps modkit.Deps,
	k domain.Kind[E, I, P],
	prefix string,
	opts []modkit.Option,
) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(k.Table), modkit.WithPrefix(prefix)}, opts...)...)
	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	svc := entriessvc.New(k, unit(deps, k.Layout, cfg), entriessvc.Options{
		Hasher:   deps.HasherOrDefault(),
		Recorder: injected.Recorder,
		Ops:      metrics.NewOps(deps.Metrics),
	})

	logger.Named("entries."+k.Name).Debug().
		Bool("memory", deps.Memory()).
		Str("driver", string(deps.Driver)).
		Int("max_limit", cfg.MaxLimit).
		Msg("content store ready")

	return &Module{
		built: b,
		ports: domain.ServicePort[E, I, P](svc),
		register: func(r httpkit.Router) {
			entrieshttp.Register[E, I, P](r, k, svc, cfg.limits())
		},
	}
}

// unit picks the sql repo for deps.Driver or an in process store
// postgres transactions carry a statement timeout
func unit[E domain.Entry](deps modkit.Deps, l domain.Layout[E], opts Options) entriesrepo.Unit[E] {
	if deps.Memory() {
		return entriesrepo.NewMemory[E]()
	}
	db := deps.DB
	if deps.Driver == store.DriverPostgres && opts.StatementTimeout > 0 {
		db = repokit.WithBeginHooks(db, repokit.StatementTimeout(opts.StatementTimeout))
	}
	return entriesrepo.NewSQLUnit[E](db, entriesrepo.NewSQL(l, deps.Driver))
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r, m.register) }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }
