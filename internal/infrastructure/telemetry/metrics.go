package telemetry

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors the application exposes
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	TicketsSold      prometheus.Counter
	TicketsRefunded  prometheus.Counter
	TicketsCheckedIn prometheus.Counter
	PurchaseDuration prometheus.Histogram
}

// NewMetrics creates and registers all collectors on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "citytickets_http_requests_total",
			Help: "Number of HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "citytickets_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		TicketsSold: factory.NewCounter(prometheus.CounterOpts{
			Name: "citytickets_tickets_sold_total",
			Help: "Number of tickets sold",
		}),

		TicketsRefunded: factory.NewCounter(prometheus.CounterOpts{
			Name: "citytickets_tickets_refunded_total",
			Help: "Number of tickets refunded",
		}),

		TicketsCheckedIn: factory.NewCounter(prometheus.CounterOpts{
			Name: "citytickets_tickets_checked_in_total",
			Help: "Number of tickets checked in at the entrance",
		}),

		PurchaseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "citytickets_purchase_duration_seconds",
			Help:    "End-to-end purchase processing latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordTicketSold counts one sold ticket
func (m *Metrics) RecordTicketSold() { m.TicketsSold.Inc() }

// RecordTicketRefunded counts one refunded ticket
func (m *Metrics) RecordTicketRefunded() { m.TicketsRefunded.Inc() }

// RecordTicketCheckedIn counts one check-in
func (m *Metrics) RecordTicketCheckedIn() { m.TicketsCheckedIn.Inc() }

// RecordPurchase observes one purchase latency
func (m *Metrics) RecordPurchase(d time.Duration) { m.PurchaseDuration.Observe(d.Seconds()) }

// Handler returns the scrape endpoint handler for the private registry
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Middleware records request counts and latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
