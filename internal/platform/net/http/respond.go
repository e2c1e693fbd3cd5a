// Package http holds the router seam, the server and return-style handler plumbing
package http

import (
	"encoding/json"
	stdhttp "net/http"

	lumnet "biasdb/internal/platform/net"
)

// Response is what a return-style handler hands back
// a Body that is an error turns into an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if resp.Status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := lumnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		writeJSON(w)(lumnet.Error(err, reqID))
		return
	}
	writeJSON(w)(lumnet.Success(resp.Status, resp.Body, reqID))
}

func writeJSON(w stdhttp.ResponseWriter) func(int, lumnet.Wire) {
	return func(status int, body lumnet.Wire) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return Response{Body: err} }
