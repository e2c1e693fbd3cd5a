// Package migrate applies the embedded schema migrations with goose
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"biasdb/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var migrations embed.FS

// Dialect names a migration set
type Dialect string

const (
	// Postgres migrations live under sql/postgres
	Postgres Dialect = "postgres"

	// SQLite migrations live under sql/sqlite
	SQLite Dialect = "sqlite"
)

func (d Dialect) goose() (goose.Dialect, error) {
	switch d {
	case Postgres:
		return goose.DialectPostgres, nil
	case SQLite:
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("migrate: unknown dialect %q", d)
}

// FS returns the migration files for d rooted at its directory
func FS(d Dialect) (fs.FS, error) {
	return fs.Sub(migrations, "sql/"+string(d))
}

// Up applies every pending migration for d on db and returns the applied versions
func Up(ctx context.Context, db *sql.DB, d Dialect) ([]int64, error) {
	gd, err := d.goose()
	if err != nil {
		return nil, err
	}
	sub, err := FS(d)
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(gd, db, sub)
	if err != nil {
		return nil, fmt.Errorf("migrate: provider: %w", err)
	}
	res, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: up: %w", err)
	}
	applied := make([]int64, 0, len(res))
	log := logger.Named("migrate")
	for _, r := range res {
		applied = append(applied, r.Source.Version)
		log.Info().
			Str("dialect", string(d)).
			Int64("version", r.Source.Version).
			Dur("took", r.Duration).
			Msg("migration applied")
	}
	return applied, nil
}

// UpPool runs the postgres migrations over a database/sql view of pool
func UpPool(ctx context.Context, pool *pgxpool.Pool) ([]int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()
	return Up(ctx, db, Postgres)
}
