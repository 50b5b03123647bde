// Package metrics exposes prometheus instruments for the HTTP surface
// and the document workflow.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics instruments inbound requests.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nexoav_http_requests_total",
			Help: "Count of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nexoav_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// GinMiddleware records request counts and latency.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// DocumentMetrics counts document workflow events.
type DocumentMetrics struct {
	documentsCreated   *prometheus.CounterVec
	transitions        *prometheus.CounterVec
	paymentsRegistered prometheus.Counter
}

// NewDocumentMetrics registers document instruments on the default registry.
func NewDocumentMetrics() *DocumentMetrics {
	return &DocumentMetrics{
		documentsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nexoav_documents_created_total",
			Help: "Documents created by kind.",
		}, []string{"kind"}),
		transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nexoav_document_transitions_total",
			Help: "Document status transitions by kind and target status.",
		}, []string{"kind", "status"}),
		paymentsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nexoav_payments_registered_total",
			Help: "Payments registered against invoices.",
		}),
	}
}

// RecordDocumentCreated increments the created counter.
func (m *DocumentMetrics) RecordDocumentCreated(kind string) {
	if m == nil {
		return
	}
	m.documentsCreated.WithLabelValues(strings.TrimSpace(kind)).Inc()
}

// RecordTransition increments the transition counter.
func (m *DocumentMetrics) RecordTransition(kind, status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(strings.TrimSpace(kind), strings.TrimSpace(status)).Inc()
}

// RecordPayment increments the payment counter.
func (m *DocumentMetrics) RecordPayment() {
	if m == nil {
		return
	}
	m.paymentsRegistered.Inc()
}
