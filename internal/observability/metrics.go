package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus instruments for the HTTP surface and the
// notification channels.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	channelOutcomes *prometheus.CounterVec
}

// NewMetrics builds a registry with process/go collectors plus the
// service-specific instruments.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		channelOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_channel_outcomes_total",
			Help: "Notification channel attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.channelOutcomes)
	return m
}

// RecordRequest counts a finished HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// RecordChannelOutcome counts one channel attempt. outcome is one of
// "succeeded", "failed" or "skipped".
func (m *Metrics) RecordChannelOutcome(channel, outcome string) {
	if m == nil {
		return
	}
	m.channelOutcomes.WithLabelValues(channel, outcome).Inc()
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
