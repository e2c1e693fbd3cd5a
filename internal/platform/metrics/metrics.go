// Package metrics owns the prometheus registry and the collectors services share
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric this service exports
const Namespace = "biasdb"

// NewRegistry returns a registry preloaded with go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler exposes g in the prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Outcome labels the result of a store operation
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeConflict  Outcome = "conflict"
	OutcomeCollision Outcome = "collision"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeError     Outcome = "error"
)

// Ops counts and times entry store operations by kind and op
// a nil *Ops is valid and records nothing
type Ops struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	opsMu    sync.Mutex
	opsByReg = map[prometheus.Registerer]*Ops{}
)

// NewOps registers the op collectors on reg once and returns the shared set
// nil reg yields a nil *Ops
func NewOps(reg prometheus.Registerer) *Ops {
	if reg == nil {
		return nil
	}
	opsMu.Lock()
	defer opsMu.Unlock()
	if o, ok := opsByReg[reg]; ok {
		return o
	}
	factory := promauto.With(reg)
	o := &Ops{
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "entry_ops_total",
			Help:      "Entry store operations by kind, op and outcome",
		}, []string{"kind", "op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "entry_op_duration_seconds",
			Help:      "Entry store operation latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "op"}),
	}
	opsByReg[reg] = o
	return o
}

// Observe records one finished operation
func (o *Ops) Observe(kind, op string, outcome Outcome, since time.Time) {
	if o == nil {
		return
	}
	o.total.WithLabelValues(kind, op, string(outcome)).Inc()
	o.duration.WithLabelValues(kind, op).Observe(time.Since(since).Seconds())
}

// Counter is a nil safe single counter
type Counter struct{ c prometheus.Counter }

// NewCounter registers a plain counter under the service namespace
func NewCounter(reg prometheus.Registerer, name, help string) *Counter {
	if reg == nil {
		return nil
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: Namespace, Name: name, Help: help})
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return &Counter{c: existing}
			}
		}
		panic(err)
	}
	return &Counter{c: c}
}

// Inc adds one
func (c *Counter) Inc() {
	if c == nil {
		return
	}
	c.c.Inc()
}
