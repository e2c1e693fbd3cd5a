package http

import "net/http"

// Handler is a plain net/http handler func
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the seam modules mount on, AdaptChi backs it
type Router interface {
	Route(pattern string, fn func(Router))
	Use(mw ...func(http.Handler) http.Handler)

	Get(path string, h Handler)
	Post(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)

	// Handle matches every method, pprof and swagger use it
	Handle(path string, h http.Handler)

	// Mux is the root handler to serve
	Mux() http.Handler
}
