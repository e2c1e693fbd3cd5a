// Package paging parses skip and limit query parameters into an offset window
package paging

import (
	"net/url"
	"strconv"
	"strings"

	perr "biasdb/internal/platform/errors"
)

const (
	// DefaultLimit is used when limit is absent or zero
	DefaultLimit = 1000

	// MaxLimit is the ceiling applied when Limits.Max is unset
	MaxLimit = 1000
)

// Limits bounds what a caller may ask for
type Limits struct {
	Default int
	Max     int
}

// Window is a validated offset window
type Window struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

func (l Limits) norm() Limits {
	if l.Max <= 0 {
		l.Max = MaxLimit
	}
	if l.Default <= 0 {
		l.Default = DefaultLimit
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// Parse reads skip and limit from q
// skip defaults to 0, limit defaults to l.Default and zero means default
func Parse(q url.Values, l Limits) (Window, error) {
	l = l.norm()

	skip, err := number(q, "skip")
	if err != nil {
		return Window{}, err
	}
	limit, err := number(q, "limit")
	if err != nil {
		return Window{}, err
	}
	if limit == 0 {
		limit = l.Default
	}
	if limit > l.Max {
		return Window{}, perr.WithField(perr.Validationf("limit must be at most %d", l.Max), "limit")
	}
	return Window{Skip: skip, Limit: limit}, nil
}

// number parses a non negative integer, absent means 0
func number(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.Validationf("parameter '%s' must be a number", key), key)
	}
	if n < 0 {
		return 0, perr.WithField(perr.Validationf("parameter '%s' must not be negative", key), key)
	}
	return n, nil
}
