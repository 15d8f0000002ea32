package metrics

import (
	"net/http"
	"strconv"
	"strings"
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
			Namespace: "reporting_demo",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reporting_demo",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reporting_demo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	calculatorOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reporting_demo",
			Subsystem: "calculator",
			Name:      "operations_total",
			Help:      "Total number of calculator operations.",
		},
		[]string{"operation", "outcome"},
	)

	dataOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reporting_demo",
			Subsystem: "data",
			Name:      "operations_total",
			Help:      "Total number of data-processing operations.",
		},
		[]string{"operation", "outcome"},
	)

	userCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reporting_demo",
			Subsystem: "users",
			Name:      "total",
			Help:      "Current number of users in the store.",
		},
	)

	activeUserCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reporting_demo",
			Subsystem: "users",
			Name:      "active",
			Help:      "Current number of active users in the store.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		calculatorOps,
		dataOps,
		userCount,
		activeUserCount,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordCalculatorOp records one calculator operation outcome.
func RecordCalculatorOp(operation string, ok bool) {
	calculatorOps.WithLabelValues(operation, outcomeLabel(ok)).Inc()
}

// RecordDataOp records one data-processing operation outcome.
func RecordDataOp(operation string, ok bool) {
	dataOps.WithLabelValues(operation, outcomeLabel(ok)).Inc()
}

// SetUserCounts publishes the current store sizes.
func SetUserCounts(total, active int) {
	userCount.Set(float64(total))
	activeUserCount.Set(float64(active))
}

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses resource IDs so label cardinality stays bounded.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] != "api" {
		return "/" + parts[0]
	}
	if len(parts) == 1 {
		return "/api"
	}
	resource := parts[1]
	switch resource {
	case "users":
		if len(parts) >= 3 && parts[2] == "search" {
			return "/api/users/search"
		}
		if len(parts) >= 3 {
			return "/api/users/:id"
		}
		return "/api/users"
	case "calculator", "data":
		if len(parts) >= 3 {
			return "/api/" + resource + "/" + parts[2]
		}
		return "/api/" + resource
	default:
		return "/api/" + resource
	}
}
