package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryanwahyu/openai-status/internal/domain/probes"
)

const namespace = "openai_status"

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"method", "route"},
	)

	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Completed deployment probes",
		},
		[]string{"model_family", "service"},
	)

	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Chat completion latency per probe",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"model_family"},
	)

	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Probe runs by outcome",
		},
		[]string{"model_family", "status"},
	)

	TriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trigger_invocations_total",
			Help:      "Trigger invocations by outcome",
		},
		[]string{"trigger", "status"},
	)
)

func status(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

// Recorder feeds probe, run and trigger outcomes into the Prometheus vectors.
type Recorder struct{}

var _ probes.Recorder = Recorder{}

func (Recorder) ObserveProbe(res probes.ProbeResult) {
	ProbesTotal.WithLabelValues(res.ModelFamily, res.Service).Inc()
	ProbeDuration.WithLabelValues(res.ModelFamily).Observe(res.Duration)
}

func (Recorder) ObserveRun(modelFamily string, err error) {
	RunsTotal.WithLabelValues(modelFamily, status(err)).Inc()
}

func (Recorder) ObserveTrigger(trigger string, err error) {
	TriggersTotal.WithLabelValues(trigger, status(err)).Inc()
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler exposes the default registry in Prometheus text format
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
