package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitclub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsScheduledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_sessions_scheduled_total",
			Help: "Total number of sessions committed",
		},
		[]string{"session_type"},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_booking_conflicts_total",
			Help: "Total number of scheduling attempts rejected for a conflict",
		},
		[]string{"kind"},
	)

	AvailabilityWindowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_availability_windows_total",
			Help: "Total number of trainer availability windows recorded",
		},
	)

	RoomsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_rooms_created_total",
			Help: "Total number of rooms created",
		},
	)

	MembersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_members_registered_total",
			Help: "Total number of members registered",
		},
	)
)

func RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}
