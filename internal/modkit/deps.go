// Package modkit provides module wiring and core deps
package modkit

import (
	"biasdb/internal/core/digest"
	"biasdb/internal/modkit/repokit"
	"biasdb/internal/platform/config"
	"biasdb/internal/platform/logger"
	"biasdb/internal/platform/store"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// DB is the sql seam for entry tables, nil under the memory driver
	DB repokit.TxRunner

	// Driver names the backend behind DB and picks its sql dialect
	Driver store.Driver

	// CH is the event journal sink, nil when clickhouse is disabled
	CH store.Clickhouse

	// Hasher derives entry keys, nil means digest.Default
	Hasher digest.Hasher

	// Metrics receives module collectors, nil disables them
	Metrics prometheus.Registerer
}

// Memory reports whether entry stores should stay in process
func (d Deps) Memory() bool { return d.DB == nil || d.Driver == store.DriverMemory }

// HasherOrDefault returns the configured hasher or the xxh3 default
func (d Deps) HasherOrDefault() digest.Hasher { return digest.Or(d.Hasher) }
