package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"biasdb/internal/platform/config"
	"biasdb/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ShutdownGrace bounds how long Run waits for in flight requests once ctx ends
const ShutdownGrace = 10 * time.Second

// Server owns the chi mux and the net/http server listening for it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer listens on ADDR, else PORT, else :8080
func NewServer(cfg config.Conf) *Server {
	addr := listenAddr(cfg)
	m := chi.NewRouter()
	return &Server{
		addr: addr,
		mux:  m,
		srv:  &stdhttp.Server{Addr: addr, Handler: m, ReadHeaderTimeout: 10 * time.Second},
	}
}

// listenAddr accepts a bare port ("8080") or a host:port
func listenAddr(cfg config.Conf) string {
	if a := cfg.MayString("ADDR", ""); a != "" {
		return a
	}
	p := cfg.MayString("PORT", "8080")
	if !strings.Contains(p, ":") {
		p = ":" + p
	}
	return p
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it stops
// cancelling ctx shuts the server down gracefully
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
