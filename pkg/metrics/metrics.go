package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mahal_booking"

// Admission outcomes.
const (
	OutcomeAdmitted      = "admitted"
	OutcomeConflict      = "conflict"
	OutcomeVenueNotFound = "venue_not_found"
	OutcomeInvalid       = "invalid"
	OutcomeStoreError    = "store_error"
)

var (
	once sync.Once

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admission_total",
			Help:      "Booking admission decisions by requested shift and outcome.",
		},
		[]string{"shift", "outcome"},
	)

	admissionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admission_duration_seconds",
			Help:      "Time spent inside the slot lock for one admission.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	bookingStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_change_total",
			Help:      "Administrative booking status transitions.",
		},
		[]string{"from", "to"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			admissions,
			admissionDuration,
			bookingStatusChanges,
			httpRequests,
			httpDuration,
		)
	})
}

func IncAdmission(shift, outcome string) {
	admissions.WithLabelValues(shift, outcome).Inc()
}

func ObserveAdmissionDuration(seconds float64) {
	admissionDuration.Observe(seconds)
}

func IncStatusChange(from, to string) {
	bookingStatusChanges.WithLabelValues(from, to).Inc()
}

func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}
