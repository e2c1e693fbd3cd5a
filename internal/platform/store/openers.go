package store

import (
	"context"

	chx "biasdb/internal/platform/store/ch"
	"biasdb/internal/platform/store/migrate"
	"biasdb/internal/platform/store/pg"
	"biasdb/internal/platform/store/sqlite"
	"biasdb/internal/platform/store/trace"
)

// openPG builds the pool, waits for postgres to answer and migrates before publishing the adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{URL: cfg.PG.URL, MaxConns: cfg.PG.MaxConns})
	if err != nil {
		return nil, err
	}
	if err := pg.Wait(ctx, pool.Ping, cfg.PG.ConnectRetries, cfg.PG.PingTimeout); err != nil {
		pool.Close()
		return nil, err
	}
	if cfg.PG.Migrate {
		if _, err := migrate.UpPool(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return newPGAdapter(pool, tracing(s, "pg", cfg.PG.LogSQL, cfg.PG.SlowQueryMs)), nil
}

// openLite opens the sqlite file and migrates it when asked
func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	l, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Lite.Path, BusyTimeoutMs: cfg.Lite.BusyTimeoutMs})
	if err != nil {
		return nil, err
	}
	if cfg.Lite.Migrate {
		if _, err := migrate.Up(ctx, l.DB, migrate.SQLite); err != nil {
			_ = l.Close()
			return nil, err
		}
	}
	return newLiteAdapter(l, tracing(s, "sqlite", cfg.Lite.LogSQL, cfg.Lite.SlowQueryMs)), nil
}

func tracing(s *Store, component string, on bool, slowMs int) traced {
	if !on {
		return traced{}
	}
	return traced{tracer: trace.New(s.Log, component), slowMs: slowMs}
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	name := cfg.CH.ClientName
	if name == "" {
		name = cfg.AppName
	}
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: name,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return chSeam{c}, nil
}
