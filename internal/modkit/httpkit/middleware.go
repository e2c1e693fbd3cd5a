package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"biasdb/internal/platform/config"
	"biasdb/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	SlowRequest time.Duration
	Timeout     time.Duration
	CORSMaxAge  int
}

// StackFromConfig reads SLOW_REQUEST, REQUEST_TIMEOUT and CORS_MAX_AGE
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		SlowRequest: cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		CORSMaxAge:  cfg.MayInt("CORS_MAX_AGE", 300),
	}
}

// CommonStack is the middleware every /api/v1 route runs behind, outermost first
// there is no slash rewriting since a decoded text locator may end in "/"
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Correlate,
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(middleware.CORSOptions{MaxAge: o.CORSMaxAge}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.Timeout(o.Timeout),
	}
}
