package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_transitions_total",
		Help: "Booking status changes by target status",
	}, []string{"to"})

	InvoicesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoices_created_total",
		Help: "Total number of invoices created",
	})

	PaymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Payment rows written by method",
	}, []string{"method"})
)

func BookingTransition(to string) {
	BookingTransitionsTotal.WithLabelValues(to).Inc()
}

func InvoiceCreated() {
	InvoicesCreatedTotal.Inc()
}

func PaymentRecorded(method string) {
	PaymentsRecordedTotal.WithLabelValues(method).Inc()
}
