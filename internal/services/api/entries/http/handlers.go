// Package http provides http transport for the entry content stores
package http

import (
	stdhttp "net/http"

	"biasdb/internal/modkit/httpkit"
	"biasdb/internal/platform/paging"
	"biasdb/internal/services/api/entries/domain"
	svc "biasdb/internal/services/api/entries/service"
)

// LocatorParam is the path segment carrying the original text of an entry
const LocatorParam = "text"

// Register mounts the list, create, update and delete endpoints for kind k
func Register[E domain.Entry, I domain.Input, P domain.Patch](
	r httpkit.Router,
	k domain.Kind[E, I, P],
	s svc.Service[E, I, P],
	lim paging.Limits,
) {
	h := &handlers[E, I, P]{kind: k, svc: s, lim: lim}
	httpkit.Get(r, "/", h.read)
	httpkit.PostJSON[I](r, "/", h.create)
	httpkit.PatchJSON[P](r, "/{"+LocatorParam+"}", h.update)
	httpkit.Delete(r, "/{"+LocatorParam+"}", h.delete)
}

type handlers[E domain.Entry, I domain.Input, P domain.Patch] struct {
	kind domain.Kind[E, I, P]
	svc  svc.Service[E, I, P]
	lim  paging.Limits
}

// read lists entries
// query: hash, text, bias_type, url, fields, skip, limit
func (h *handlers[E, I, P]) read(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	w, err := paging.Parse(q, h.lim)
	if err != nil {
		return nil, err
	}
	fields, err := h.kind.ParseFields(q.Get("fields"))
	if err != nil {
		return nil, err
	}
	items, err := h.svc.Read(r.Context(), domain.Query{
		Filter: domain.Filter{
			Hash:     q.Get("hash"),
			BiasType: q.Get("bias_type"),
			URL:      q.Get("url"),
		},
		Text:   q.Get("text"),
		Fields: fields,
		Window: w,
	})
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return h.kind.Project(items, fields), nil
	}
	return items, nil
}

func (h *handlers[E, I, P]) create(r *stdhttp.Request, in I) (any, error) {
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

func (h *handlers[E, I, P]) update(r *stdhttp.Request, p P) (any, error) {
	return h.svc.Update(r.Context(), httpkit.PathParam(r, LocatorParam), p)
}

func (h *handlers[E, I, P]) delete(r *stdhttp.Request) (any, error) {
	return h.svc.Delete(r.Context(), httpkit.PathParam(r, LocatorParam))
}
