// Package sqlite provides an embedded SQLite client on top of modernc.org/sqlite
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Memory is the path that keeps the whole database in process
const Memory = ":memory:"

// Config configures the sqlite handle
type Config struct {
	Path          string
	BusyTimeoutMs int
}

// Lite is an open sqlite handle
type Lite struct {
	DB *sql.DB
}

// Open opens the database at cfg.Path and applies connection pragmas
// a single connection is kept so :memory: databases survive and writers never contend
func Open(ctx context.Context, cfg Config) (*Lite, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busy),
	}
	if path != Memory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	return &Lite{DB: db}, nil
}

// Close closes the handle
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
