// Command biasdb-api serves the report and feedback stores over HTTP
// its OpenAPI document is internal/modkit/swaggerkit/openapi.json
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"biasdb/internal/modkit/module"
	"biasdb/internal/modkit/repokit"
	"biasdb/internal/platform/config"
	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/metrics"
	phttp "biasdb/internal/platform/net/http"
	"biasdb/internal/platform/store"

	"biasdb/internal/services/api"
	journalmod "biasdb/internal/services/journal/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	liteCfg := root.Prefix("SERVICE_SQLITE_")   // liteCfg lives under SERVICE_SQLITE_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	driver, err := store.ParseDriver(root.MayString("STORE_DRIVER", ""))
	if err != nil {
		l.Panic().Err(err).Msg("bad STORE_DRIVER")
	}
	migrate := apiCfg.MayBool("MIGRATE", true)

	cfg := store.Config{AppName: "biasdb"}
	switch driver {
	case store.DriverPostgres:
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			Migrate:     migrate,
		}
	case store.DriverSQLite:
		cfg.Lite = store.SQLiteConfig{
			Enabled:     true,
			Path:        liteCfg.MayString("PATH", "biasdb.db"),
			SlowQueryMs: liteCfg.MayInt("SLOW_MS", 500),
			LogSQL:      liteCfg.MayBool("LOG_SQL", false),
			Migrate:     migrate,
		}
	}
	if chCfg.MayBool("ENABLED", false) {
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "biasdb",
			ClientTag:  "api",
		}
	}

	// open the platform store (sql backend + optional CH journal)
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend does not answer
	repokit.MustGuard(ctx, st)

	l.Info().
		Str("driver", string(driver)).
		Bool("journal", st.CH != nil).
		Msg("store ready")

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Driver:         driver,
			Logger:         l,
			Metrics:        metrics.NewRegistry(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// journal worker flushes events until ctx ends
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		jp, ok := module.PortsAs[journalmod.Ports]("journal")
		if !ok || jp.Worker == nil {
			return
		}
		if err := jp.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("journal worker stopped")
		}
	}()

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	stop()

	// the journal drains its queue before the store closes
	<-workerDone
	l.Info().Msg("bye")
}
