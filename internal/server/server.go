// Package server exposes the orchestration pipeline and notification
// surface over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/workspace-management/internal/orchestration"
	"github.com/nhle/workspace-management/internal/store"
)

// Server wires the HTTP routes to the store and orchestrator.
type Server struct {
	store  store.Store
	orch   *orchestration.Orchestrator
	logger zerolog.Logger

	httpServer *http.Server
}

// New builds a Server listening on addr.
func New(addr string, st store.Store, orch *orchestration.Orchestrator, logger zerolog.Logger) *Server {
	s := &Server{
		store:  st,
		orch:   orch,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/workspaces/{slug}/orchestrate/", s.handleOrchestrate)
	mux.HandleFunc("GET /api/workspaces/{slug}/notifications/", s.handleListNotifications)
	mux.HandleFunc("POST /api/notifications/{id}/read/", s.handleMarkNotificationRead)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.logRequests(s.recoverPanics(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks serving requests until the listener fails or
// Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
