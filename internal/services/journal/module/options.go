package module

import (
	"time"

	"biasdb/internal/platform/config"
)

// Options controls the journal recorder
type Options struct {
	Buffer int
	Flush  time.Duration
}

// FromConfig reads with JOURNAL_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("JOURNAL_")
	return Options{
		Buffer: c.MayInt("BUFFER", 256),
		Flush:  c.MayDuration("FLUSH", 2*time.Second),
	}
}
