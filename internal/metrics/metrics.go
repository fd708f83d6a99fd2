package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the API. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
	AppointmentsCreated    prometheus.Counter
	AppointmentTransitions *prometheus.CounterVec
	AuditDropped           prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AppointmentsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "salon_appointments_created_total",
			Help: "Total number of booked appointments",
		}),

		AppointmentTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_appointment_status_changes_total",
			Help: "Appointment status changes by resulting status",
		}, []string{"status"}),

		AuditDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "salon_audit_events_dropped_total",
			Help: "Audit events dropped because the queue was full",
		}),
	}
}

func (m *Metrics) AppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.AppointmentTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) AuditEventDropped() {
	if m == nil {
		return
	}
	m.AuditDropped.Inc()
}
