// Package api provides the HTTP API for the application
package api

import (
	"biasdb/internal/core/digest"
	"biasdb/internal/platform/config"
	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/metrics"
	phttp "biasdb/internal/platform/net/http"
	"biasdb/internal/platform/store"

	"biasdb/internal/modkit"
	"biasdb/internal/modkit/httpkit"
	"biasdb/internal/modkit/module"
	"biasdb/internal/modkit/swaggerkit"

	entriesmod "biasdb/internal/services/api/entries/module"
	metamod "biasdb/internal/services/api/meta/module"

	// Journal module (owns the Recorder and Worker ports)
	journalmod "biasdb/internal/services/journal/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Driver store.Driver
	Logger *logger.Logger

	// Hasher overrides the entry key digest, nil means xxh3-128
	Hasher digest.Hasher

	// Metrics is served at /metrics when EnableMetrics is set
	Metrics *prometheus.Registry

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router and returns the mounted modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:    opt.Config,
		Driver: opt.Driver,
		Hasher: opt.Hasher,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		if db := opt.Store.SQL(); db != nil {
			deps.DB = db
		}
		deps.CH = opt.Store.CH
	}
	if opt.Metrics != nil {
		deps.Metrics = opt.Metrics
	}

	// Construct the journal first and extract its Recorder port
	journal := journalmod.New(deps, journalmod.Options{})
	rec := module.MustPortsOf[journalmod.Ports](journal).Recorder

	// Inject that Recorder into both entry stores
	withRecorder := modkit.WithPorts(entriesmod.Ports{Recorder: rec})

	mods := []modkit.Module{
		metamod.New(deps),
		entriesmod.NewReports(deps, withRecorder),
		entriesmod.NewFeedback(deps, withRecorder),
		journal, // include the journal so its ports are registered
	}

	if opt.EnableMetrics && opt.Metrics != nil {
		r.Handle("/metrics", metrics.Handler(opt.Metrics))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
	return mods
}
