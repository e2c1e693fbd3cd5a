package modkit

import (
	"net/http"
	"strings"

	"biasdb/internal/modkit/httpkit"
)

// Module is what the api mounts: routes under a prefix plus a port set for cross wiring
type Module interface {
	MountRoutes(r httpkit.Router)
	Ports() any
	Name() string
}

// Option adjusts how a module is built
type Option func(*Built)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// WithName sets the module name used in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module exposes, the importing module owns T
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Build applies opts in order, later options win
// it panics on an empty name or a prefix that resolves to "/"
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	if strings.TrimSpace(b.Name) == "" {
		panic("modkit: module name is required")
	}
	b.Prefix = "/" + strings.Trim(strings.TrimSpace(b.Prefix), "/")
	if b.Prefix == "/" {
		panic("modkit: module " + b.Name + " needs a prefix")
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes register under b.Prefix with b.Mw applied
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(b.Prefix, func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		register(rr)
	})
}
