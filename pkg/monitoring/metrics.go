package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Outbound API request metrics
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hms_api_requests_total",
			Help: "Total number of requests sent to the HMS backend",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hms_api_request_duration_seconds",
			Help:    "Duration of HMS backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Authorization failure metrics
	authFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hms_auth_failures_total",
			Help: "Total number of 401 responses that forced a logout",
		},
	)

	// Stale slot responses discarded by the booking workflow
	staleSlotResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hms_stale_slot_responses_total",
			Help: "Total number of slot-availability responses discarded as stale",
		},
	)
)

func init() {
	prometheus.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		authFailuresTotal,
		staleSlotResponsesTotal,
	)
}

// Handler returns the HTTP handler exposing the collected metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one completed backend request
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAuthFailure records one globally intercepted authorization failure
func RecordAuthFailure() {
	authFailuresTotal.Inc()
}

// RecordStaleSlotResponse records one discarded slot-availability response
func RecordStaleSlotResponse() {
	staleSlotResponsesTotal.Inc()
}
