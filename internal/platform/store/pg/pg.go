// Package pg opens the pgx pool behind the postgres store seam
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
}

// seams for tests
var (
	newPool = pgxpool.NewWithConfig
	sleep   = time.Sleep
)

// Open parses cfg.URL and builds a pool, it does not dial
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	return newPool(ctx, pcfg)
}

// Wait calls ping until it succeeds, backing off from 150ms up to 2s
// attempts <= 0 means 20 and timeout <= 0 means 3s per ping
func Wait(ctx context.Context, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = 20
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	backoff := 150 * time.Millisecond

	var err error
	for i := range attempts {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i < attempts-1 {
			sleep(backoff)
			backoff = min(backoff*2, 2*time.Second)
		}
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
}
