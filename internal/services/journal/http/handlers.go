// Package http provides http transport for the event journal
package http

import (
	stdhttp "net/http"
	"strings"

	"biasdb/internal/modkit/httpkit"
	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/paging"
	"biasdb/internal/services/journal/domain"
)

// Register mounts the events listing on r
func Register(r httpkit.Router, s domain.ReaderPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.recent)
}

type handlers struct{ svc domain.ReaderPort }

// recent lists journal events newest first
// query: kind, limit
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	if q.Has("skip") {
		return nil, perr.WithField(perr.Validationf("events do not support skip"), "skip")
	}
	w, err := paging.Parse(q, paging.Limits{Default: 100, Max: 1000})
	if err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), domain.RecentQuery{
		Kind:  strings.TrimSpace(q.Get("kind")),
		Limit: w.Limit,
	})
}
