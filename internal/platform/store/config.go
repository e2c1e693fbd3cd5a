package store

import (
	"fmt"
	"strings"
	"time"
)

// Driver selects which sql backend serves the entry stores
type Driver string

const (
	// DriverPostgres uses pgxpool
	DriverPostgres Driver = "postgres"

	// DriverSQLite uses an embedded modernc sqlite file
	DriverSQLite Driver = "sqlite"

	// DriverMemory keeps entries in process and opens no sql backend
	DriverMemory Driver = "memory"
)

// ParseDriver normalizes a configured driver name, empty means postgres
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DriverPostgres, nil
	case DriverPostgres, DriverSQLite, DriverMemory:
		return d, nil
	}
	return "", fmt.Errorf("store: unknown driver %q (want postgres, sqlite or memory)", s)
}

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG   PGConfig
	Lite SQLiteConfig
	CH   CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	Migrate     bool

	// Guard/boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// SQLiteConfig configures the embedded sqlite backend
type SQLiteConfig struct {
	Enabled       bool
	Path          string
	BusyTimeoutMs int
	LogSQL        bool
	SlowQueryMs   int
	Migrate       bool
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}
