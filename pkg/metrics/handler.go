package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(
		r.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// RegisterMetricsRoute registers /metrics on the analyzer's chi router.
// Example usage:
//
//	r := chi.NewRouter()
//	registry := metrics.NewRegistry(metrics.DefaultConfig())
//	registry.RegisterMetricsRoute(r)
func (r *Registry) RegisterMetricsRoute(mux interface {
	Handle(pattern string, handler http.Handler)
}) {
	mux.Handle("/metrics", r.Handler())
}
