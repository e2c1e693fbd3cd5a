// Package module mounts the meta endpoints
package module

import (
	"time"

	"biasdb/internal/core/version"
	modkit "biasdb/internal/modkit"
	"biasdb/internal/modkit/httpkit"
	metahttp "biasdb/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs the meta module mounted at /meta
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		built: modkit.Build(append([]modkit.Option{
			modkit.WithName("meta"),
			modkit.WithPrefix("/meta"),
		}, opts...)...),
		deps:      deps,
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			Driver:      string(m.deps.Driver),
			DB:          m.deps.DB,
			CH:          m.deps.CH,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface, meta exposes none
func (m *Module) Ports() any { return nil }
