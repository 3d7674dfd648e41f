package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "route"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	progressionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_progression_runs_total",
			Help: "Order progression passes by result.",
		},
		[]string{"result"},
	)
	progressionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_progression_transitions_total",
			Help: "Order and transaction transitions applied by the progression pass.",
		},
		[]string{"transition"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled by the matched ServeMux pattern,
// so path parameters never blow up label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, route).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// RecordProgression counts one progression pass. A nil report without skipped means the pass failed.
func RecordProgression(report *models.ProgressionReport, skipped bool) {

	switch {
	case skipped:
		progressionRuns.WithLabelValues("skipped").Inc()
		return
	case report == nil:
		progressionRuns.WithLabelValues("error").Inc()
		return
	}

	progressionRuns.WithLabelValues("ok").Inc()

	progressionTransitions.WithLabelValues("completed").Add(float64(report.Completed))
	progressionTransitions.WithLabelValues("canceled").Add(float64(report.Canceled))
	progressionTransitions.WithLabelValues("shipped").Add(float64(report.Shipped))
	progressionTransitions.WithLabelValues("payment_succeeded").Add(float64(report.PaymentsSucceeded))
	progressionTransitions.WithLabelValues("payment_failed").Add(float64(report.PaymentsFailed))
	progressionTransitions.WithLabelValues("payment_processing").Add(float64(report.PaymentsProcessing))
	progressionTransitions.WithLabelValues("transaction_created").Add(float64(report.TransactionsCreated))
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
