package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the API server.
//
// Metrics:
//   - projecthub_http_requests_total{method,route,status}
//   - projecthub_http_request_duration_seconds{method,route}
//   - projecthub_ws_clients
//   - projecthub_realtime_events_total{event}
//   - projecthub_notifications_created_total
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	WSClients            prometheus.Gauge
	RealtimeEventsTotal  *prometheus.CounterVec
	NotificationsCreated prometheus.Counter
}

// NewMetrics creates the collectors on a private registry that also carries the Go and
// process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projecthub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "projecthub_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		WSClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "projecthub_ws_clients",
			Help: "Number of connected WebSocket clients",
		}),
		RealtimeEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projecthub_realtime_events_total",
				Help: "Total number of realtime events delivered to rooms",
			},
			[]string{"event"},
		),
		NotificationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "projecthub_notifications_created_total",
			Help: "Total number of notifications stored",
		}),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ClientConnected implements websocket.Observer
func (m *Metrics) ClientConnected() { m.WSClients.Inc() }

// ClientDisconnected implements websocket.Observer
func (m *Metrics) ClientDisconnected() { m.WSClients.Dec() }

// EventEmitted implements websocket.Observer
func (m *Metrics) EventEmitted(event string) { m.RealtimeEventsTotal.WithLabelValues(event).Inc() }

// NotificationCreated counts a stored notification. Safe on a nil receiver.
func (m *Metrics) NotificationCreated() {
	if m == nil {
		return
	}
	m.NotificationsCreated.Inc()
}
