package middleware

import (
	"net/http"

	"biasdb/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Correlate copies the chi request id onto the logger context so logger.C picks it up
// mount after RequestID
func Correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logger.WithRequest(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
