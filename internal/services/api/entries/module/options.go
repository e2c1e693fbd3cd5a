package module

import (
	"time"

	"biasdb/internal/platform/config"
	"biasdb/internal/platform/paging"
)

// Options controls listing limits and sql behaviour for the entry modules
type Options struct {
	MaxLimit int

	// StatementTimeout applies to postgres transactions, zero disables it
	StatementTimeout time.Duration
}

// FromConfig reads MAX_LIMIT and STMT_TIMEOUT under the api prefix
func FromConfig(cfg config.Conf) Options {
	return Options{
		MaxLimit:         cfg.MayInt("MAX_LIMIT", paging.MaxLimit),
		StatementTimeout: cfg.MayDuration("STMT_TIMEOUT", 5*time.Second),
	}
}

func (o Options) limits() paging.Limits {
	return paging.Limits{Default: paging.DefaultLimit, Max: o.MaxLimit}
}
