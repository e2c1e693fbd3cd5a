// Package swaggerkit serves the embedded OpenAPI document and Swagger UI under /api/docs
package swaggerkit

import (
	"net/http"

	phttp "biasdb/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsPath = "/api/docs"

// Mount registers the UI, its doc.json and a redirect from the bare path, no-op when disabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsPath, http.RedirectHandler(docsPath+"/", http.StatusPermanentRedirect).ServeHTTP)
	r.Get(docsPath+"/doc.json", serveDocJSON())
	r.Handle(docsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("biasdb"),
		httpSwagger.URL(docsPath+"/doc.json"),
	))
}
