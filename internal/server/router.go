package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bargom/codeai/pkg/logging"
	"github.com/bargom/codeai/pkg/metrics"
)

var errNotFound = errors.New("no such route")

// NewRouter builds the chi router for the analyzer HTTP driver: parse,
// validate, transpile, healthz and a Prometheus metrics endpoint.
func NewRouter(log *logging.Logger, reg *metrics.Registry) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if log != nil {
		r.Use(logging.NewHTTPMiddleware(log.Logger).Handler)
	}
	if reg != nil {
		r.Use(metrics.HTTPMiddleware(reg))
	}

	h := NewHandler(log, reg)

	r.Get("/healthz", h.HandleHealthz)
	if reg != nil {
		reg.RegisterMetricsRoute(r)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/parse", h.HandleParse)
		v1.Post("/validate", h.HandleValidate)
		v1.Post("/transpile", h.HandleTranspile)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, "", http.StatusNotFound, errNotFound)
	})

	return r
}
