// Package config reads prefixed environment variables for modules and cmd wiring
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"biasdb/internal/platform/logger"
)

// Conf scopes env lookups under a prefix, e.g. New().Prefix("CORE_API_")
type Conf struct{ prefix string }

// New returns an unscoped Conf
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key reports the full env name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) raw(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// MustString returns a required value and panics when it is unset or blank
func (c Conf) MustString(key string) string {
	v := c.raw(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns def when key is unset or blank
func (c Conf) MayString(key, def string) string {
	if v := c.raw(key); v != "" {
		return v
	}
	return def
}

// MayInt parses key as an int, bad input logs a warning and yields def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool parses key with strconv.ParseBool
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration parses key as a Go duration such as 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.raw(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).Msg("unparsable env, using default")
		return def
	}
	return v
}
