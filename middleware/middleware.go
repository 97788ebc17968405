package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RegistrationsTotal prometheus.Counter
	StorageErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "student_portal",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "student_portal",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "student_portal",
			Name:      "registrations_created_total",
			Help:      "Registrations persisted",
		}),
		StorageErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "student_portal",
			Name:      "storage_errors_total",
			Help:      "Record store failures by operation and SQLSTATE",
		}, []string{"op", "sqlstate"}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.RegistrationsTotal, m.StorageErrorsTotal)
	return m
}

// Instrument records count and latency for every request.
func (m *Metrics) Instrument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		m.RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// RegistrationCreated bumps the persisted registrations counter. Safe on a nil receiver.
func (m *Metrics) RegistrationCreated() {
	if m == nil {
		return
	}
	m.RegistrationsTotal.Inc()
}

// StorageFailed counts one store failure. An empty code is recorded as "none". Safe on a nil receiver.
func (m *Metrics) StorageFailed(op, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "none"
	}
	m.StorageErrorsTotal.WithLabelValues(op, code).Inc()
}
