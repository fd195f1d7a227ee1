// Package metrics defines the Prometheus instrumentation for the app.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts HTTP requests by method, route pattern and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motiday_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration observes request handling time by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "motiday_request_duration_seconds",
			Help: "Request duration in seconds",
		},
		[]string{"method", "path"},
	)

	// CheckinsTotal counts successful check-in submissions.
	CheckinsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "motiday_checkins_total",
			Help: "Total check-ins submitted",
		},
	)

	// RemindersSent counts delivered reminder push notifications.
	RemindersSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "motiday_reminders_sent_total",
			Help: "Total reminder push notifications delivered",
		},
	)
)

// Register registers all collectors with the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, CheckinsTotal, RemindersSent)
}
