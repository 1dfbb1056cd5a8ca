package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petcare",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petcare",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	adminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petcare",
			Subsystem: "admin",
			Name:      "login_attempts_total",
			Help:      "Admin login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	applicationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petcare",
			Subsystem: "applications",
			Name:      "decisions_total",
			Help:      "Application status changes by target status.",
		},
		[]string{"status"},
	)

	imageOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petcare",
			Subsystem: "media",
			Name:      "operations_total",
			Help:      "Image uploads and deletions by result.",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		adminLogins,
		applicationDecisions,
		imageOperations,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one handled request. route should be the
// registered pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginLocked  = "locked"
	LoginLockout = "lockout_started"
	LoginErrored = "error"
)

func RecordLogin(outcome string) {
	adminLogins.WithLabelValues(outcome).Inc()
}

func RecordApplicationDecision(status string) {
	applicationDecisions.WithLabelValues(status).Inc()
}

func RecordImageOperation(operation string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	imageOperations.WithLabelValues(operation, result).Inc()
}
