// Package server exposes the local HTTP endpoint the browser bookmarklet
// posts scraped contest standings to.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"acmcompass/internal/store"
)

// Server is the bookmarklet import server.
type Server struct {
	pending *store.PendingImport
	log     *zap.Logger
	http    *http.Server
}

// New creates the import server listening on addr.
func New(addr string, pending *store.PendingImport, log *zap.Logger) *Server {
	s := &Server{pending: pending, log: log}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	h := NewImportHandler(pending, log)
	r.Route("/api", h.RegisterRoutes)

	s.http = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler returns the underlying router, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("import server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
