// Package httpkit is the handler and routing surface modules build against
// modules import this instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "biasdb/internal/platform/net/http"
)

type (
	// Response is a return-style handler result
	Response = phttp.Response

	// Router is the platform router seam
	Router = phttp.Router
)

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// PathParam returns a route param by name, percent-decoded
func PathParam(r *http.Request, name string) string { return phttp.PathParam(r, name) }

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Call(h))
}

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.Call(h))
}

// PostJSON mounts a handler that binds and validates a T under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PatchJSON mounts a handler that binds and validates a T under PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, phttp.JSONHandler(h))
}

// MountAPIV1 mounts a subrouter at /api/v1 with mw applied, then calls mount on it
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
