package metrics

import (
	"net/http"
	"time"
)

// metricsResponseWriter wraps http.ResponseWriter to capture status and size.
type metricsResponseWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

func (w *metricsResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Flush implements http.Flusher for streaming responses.
func (w *metricsResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap returns the original ResponseWriter for http.ResponseController.
func (w *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// knownRoutes are the static paths the analyzer's HTTP driver serves.
// Every route is fixed (no resource IDs), so it doubles as the label
// set for per-route metrics; anything else collapses to "/other" to
// keep cardinality bounded against stray or malicious paths.
var knownRoutes = map[string]bool{
	"/healthz":      true,
	"/metrics":      true,
	"/v1/parse":     true,
	"/v1/validate":  true,
	"/v1/transpile": true,
}

func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "/other"
}

// HTTPMiddleware returns an HTTP middleware that records request count,
// duration, and size metrics for each of the analyzer's routes.
func HTTPMiddleware(registry *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := r.Method
			route := routeLabel(r.URL.Path)
			httpMetrics := registry.HTTP()

			httpMetrics.IncActiveRequests(method, route)
			defer httpMetrics.DecActiveRequests(method, route)

			wrapped := newMetricsResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			reqSize := r.ContentLength
			if reqSize < 0 {
				reqSize = 0
			}

			httpMetrics.RecordRequest(
				method,
				route,
				wrapped.status,
				duration,
				reqSize,
				wrapped.size,
			)
		})
	}
}
