package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"biasdb/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestCorrelate_RequestIDReachesLogger(t *testing.T) {
	var buf bytes.Buffer
	h := chimw.RequestID(Correlate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.C(r.Context()).Output(&buf)
		l.Info().Msg("inside")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "rid-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"request_id":"rid-42"`) {
		t.Fatalf("request id missing from log line: %s", buf.String())
	}
}

func TestCorrelate_NoRequestID(t *testing.T) {
	hit := false
	h := Correlate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hit = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !hit {
		t.Fatal("handler not reached")
	}
}
