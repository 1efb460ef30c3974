package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry manages all Prometheus metrics for CodeAI.
type Registry struct {
	config   Config
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestSize     *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec
	httpActiveRequests  *prometheus.GaugeVec

	// Analyzer metrics: one counter/histogram pair per operation
	// (parse, validate, transpile) invoked from the CLI or HTTP driver.
	analyzerOperationsTotal  *prometheus.CounterVec
	analyzerOperationSeconds *prometheus.HistogramVec
	analyzerWarningsTotal    *prometheus.CounterVec
	analyzerProtocolCount    *prometheus.GaugeVec

	mu sync.RWMutex
}

// Global registry instance
var (
	globalRegistry *Registry
	once           sync.Once
)

// NewRegistry creates a new metrics registry with the given configuration.
func NewRegistry(config Config) *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		config:   config,
		registry: reg,
	}

	r.registerHTTPMetrics()
	r.registerAnalyzerMetrics()

	// Register process and runtime metrics if enabled
	if config.EnableProcessMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	if config.EnableRuntimeMetrics {
		reg.MustRegister(collectors.NewGoCollector())
	}

	return r
}

// Global returns the global registry instance, initializing it with default config if needed.
func Global() *Registry {
	once.Do(func() {
		globalRegistry = NewRegistry(DefaultConfig())
	})
	return globalRegistry
}

// SetGlobal sets the global registry instance.
func SetGlobal(r *Registry) {
	globalRegistry = r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Config returns the registry configuration.
func (r *Registry) Config() Config {
	return r.config
}

func (r *Registry) registerHTTPMetrics() {
	ns := r.config.Namespace

	r.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	r.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   r.config.HistogramBuckets.HTTPDuration,
		},
		[]string{"method", "path"},
	)

	r.httpRequestSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "request_size_bytes",
			Help:      "HTTP request size in bytes",
			Buckets:   r.config.HistogramBuckets.HTTPSize,
		},
		[]string{"method", "path"},
	)

	r.httpResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   r.config.HistogramBuckets.HTTPSize,
		},
		[]string{"method", "path"},
	)

	r.httpActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "active_requests",
			Help:      "Number of currently active HTTP requests",
		},
		[]string{"method", "path"},
	)

	r.registry.MustRegister(
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.httpRequestSize,
		r.httpResponseSize,
		r.httpActiveRequests,
	)
}

// registerAnalyzerMetrics registers counters and histograms for the
// analyzer operations (parse, validate, transpile) invoked by the CLI
// driver and the HTTP server.
func (r *Registry) registerAnalyzerMetrics() {
	ns := r.config.Namespace

	r.analyzerOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "analyzer",
			Name:      "operations_total",
			Help:      "Total number of analyzer operations, by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	r.analyzerOperationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "analyzer",
			Name:      "operation_duration_seconds",
			Help:      "Analyzer operation duration in seconds",
			Buckets:   r.config.HistogramBuckets.AnalyzerDuration,
		},
		[]string{"operation"},
	)

	r.analyzerWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "analyzer",
			Name:      "warnings_total",
			Help:      "Total number of flow-analysis warnings emitted, by kind",
		},
		[]string{"kind"},
	)

	r.analyzerProtocolCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "analyzer",
			Name:      "protocols_in_program",
			Help:      "Number of protocols in the most recently analyzed program",
		},
		[]string{"operation"},
	)

	r.registry.MustRegister(
		r.analyzerOperationsTotal,
		r.analyzerOperationSeconds,
		r.analyzerWarningsTotal,
		r.analyzerProtocolCount,
	)
}

// Analyzer returns the analyzer metrics interface for the registry.
func (r *Registry) Analyzer() *AnalyzerMetrics {
	return &AnalyzerMetrics{registry: r}
}

// AnalyzerMetrics records metrics for parse/validate/transpile operations.
type AnalyzerMetrics struct {
	registry *Registry
}

// RecordOperation records the outcome and duration of one analyzer
// operation ("parse", "validate", "transpile").
func (a *AnalyzerMetrics) RecordOperation(operation, outcome string, duration float64, protocolCount int) {
	a.registry.analyzerOperationsTotal.WithLabelValues(operation, outcome).Inc()
	a.registry.analyzerOperationSeconds.WithLabelValues(operation).Observe(duration)
	a.registry.analyzerProtocolCount.WithLabelValues(operation).Set(float64(protocolCount))
}

// RecordWarning increments the warning counter for the given kind
// ("dead-end", "orphaned", "unreachable").
func (a *AnalyzerMetrics) RecordWarning(kind string) {
	a.registry.analyzerWarningsTotal.WithLabelValues(kind).Inc()
}
