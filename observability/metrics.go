package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "clinical_trials",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinical_trials",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clinical_trials",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	applicationOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinical_trials",
			Subsystem: "applications",
			Name:      "operations_total",
			Help:      "Application aggregate operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	enumFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinical_trials",
			Subsystem: "applications",
			Name:      "enum_fallbacks_total",
			Help:      "Sections written with at least one enum value replaced by its default.",
		},
		[]string{"section"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		applicationOps,
		enumFallbacks,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InflightInc and InflightDec track requests currently being served.
func InflightInc() { httpInFlight.Inc() }
func InflightDec() { httpInFlight.Dec() }

// ObserveHTTP records one finished request.
func ObserveHTTP(method, path, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordOperation counts an aggregate operation as "ok", "not_found" or "error".
func RecordOperation(operation, outcome string) {
	applicationOps.WithLabelValues(operation, outcome).Inc()
}

// RecordEnumFallback counts a section whose enum input was replaced.
func RecordEnumFallback(section string) {
	enumFallbacks.WithLabelValues(section).Inc()
}
