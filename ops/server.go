// Package ops exposes the operational HTTP surface: health and metrics.
package ops

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves /healthz and /metrics. A Server with an empty address is
// disabled and all methods are no-ops.
type Server struct {
	srv *http.Server
}

// NewServer builds the ops server. addr may be empty to disable it.
func NewServer(addr string, gatherer prometheus.Gatherer) *Server {
	if addr == "" {
		return &Server{}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	if s.srv == nil {
		log.Println("Ops server disabled, no listen address configured")
		return
	}
	go func() {
		log.Printf("Ops server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Ops server error: %v", err)
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
