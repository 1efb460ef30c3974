package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server wraps an HTTP server exposing the analyzer API, with graceful
// shutdown support.
type Server struct {
	server *http.Server
	router chi.Router
}

// New creates a Server bound to addr, serving router.
func New(router chi.Router, addr string) *Server {
	return &Server{
		router: router,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening and serving HTTP requests. It blocks until the
// server is shut down.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for active
// connections to finish or ctx to be cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the server's router.
func (s *Server) Router() chi.Router { return s.router }

// SetKeepAlivesEnabled controls whether keep-alive connections are
// accepted, so the server satisfies shutdown hook interfaces that
// disable keep-alives before draining.
func (s *Server) SetKeepAlivesEnabled(v bool) { s.server.SetKeepAlivesEnabled(v) }

// Addr returns the server's bound address.
func (s *Server) Addr() string { return s.server.Addr }
