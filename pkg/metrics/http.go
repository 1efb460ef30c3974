package metrics

import (
	"strconv"
)

// HTTPMetrics records request counts, durations, and sizes for the
// analyzer's fixed route set (/v1/parse, /v1/validate, /v1/transpile,
// /healthz, /metrics). There are no per-resource paths to normalize:
// every route is static, so method+path is already low-cardinality.
type HTTPMetrics struct {
	registry *Registry
}

// HTTP returns the HTTP metrics interface for the registry.
func (r *Registry) HTTP() *HTTPMetrics {
	return &HTTPMetrics{registry: r}
}

// RecordRequest records all metrics for one request against a route.
func (h *HTTPMetrics) RecordRequest(method, route string, statusCode int, duration float64, reqSize, respSize int64) {
	statusStr := strconv.Itoa(statusCode)

	h.registry.httpRequestsTotal.WithLabelValues(method, route, statusStr).Inc()
	h.registry.httpRequestDuration.WithLabelValues(method, route).Observe(duration)

	if reqSize >= 0 {
		h.registry.httpRequestSize.WithLabelValues(method, route).Observe(float64(reqSize))
	}
	if respSize >= 0 {
		h.registry.httpResponseSize.WithLabelValues(method, route).Observe(float64(respSize))
	}
}

// IncActiveRequests increments the active request count for a route.
func (h *HTTPMetrics) IncActiveRequests(method, route string) {
	h.registry.httpActiveRequests.WithLabelValues(method, route).Inc()
}

// DecActiveRequests decrements the active request count for a route.
func (h *HTTPMetrics) DecActiveRequests(method, route string) {
	h.registry.httpActiveRequests.WithLabelValues(method, route).Dec()
}
