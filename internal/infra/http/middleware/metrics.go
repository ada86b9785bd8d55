package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	callsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_calls_recorded_total",
			Help: "Total number of lead calls recorded",
		},
	)

	leadsTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_transferred_total",
			Help: "Total number of leads moved between account managers",
		},
	)

	activityEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_activity_events_total",
			Help: "Total number of activity events processed by the worker",
		},
		[]string{"type", "outcome"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordCallLogged() {
	callsRecorded.Inc()
}

func RecordLeadTransfer(count int64) {
	leadsTransferred.Add(float64(count))
}

func RecordActivityEvent(eventType, outcome string) {
	activityEvents.WithLabelValues(eventType, outcome).Inc()
}
