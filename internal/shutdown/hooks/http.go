package hooks

import (
	"context"
	"time"

	"github.com/bargom/codeai/internal/shutdown"
)

// HTTPServer defines the interface for an HTTP server that can be shut down.
// *server.Server (internal/server) and the standard *http.Server both
// satisfy it.
type HTTPServer interface {
	Shutdown(ctx context.Context) error
	SetKeepAlivesEnabled(v bool)
}

// HTTPServerShutdownFunc creates a shutdown hook for an HTTP server.
// It disables keep-alives and waits for active connections to drain.
func HTTPServerShutdownFunc(server HTTPServer, drainTimeout time.Duration) shutdown.HookFunc {
	return func(ctx context.Context) error {
		// Stop keeping connections alive between requests
		server.SetKeepAlivesEnabled(false)

		// Create shutdown context with drain timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, drainTimeout)
		defer cancel()

		// Shutdown server (waits for active requests)
		return server.Shutdown(shutdownCtx)
	}
}

// HTTPServerShutdown builds the named shutdown hook for server, ready to
// register with a Manager.
func HTTPServerShutdown(server HTTPServer, drainTimeout time.Duration) shutdown.Hook {
	return shutdown.Hook{
		Name: "http-server",
		Fn:   HTTPServerShutdownFunc(server, drainTimeout),
	}
}
