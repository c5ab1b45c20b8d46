// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by services.
type Recorder interface {
	RecordProviderCall(operation string, err error)
	RecordPartialFailure(operation string)
}

// Collector is the Prometheus implementation of Recorder plus HTTP metrics.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	providerCalls   *prometheus.CounterVec
	partialFailures *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventos_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eventos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventos_provider_calls_total",
			Help: "Calls to the auth/database provider and image host by operation and outcome.",
		}, []string{"operation", "outcome"}),
		partialFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventos_saga_partial_failures_total",
			Help: "Multi-step operations that failed after an earlier step succeeded.",
		}, []string{"operation"}),
	}

	reg.MustRegister(c.httpRequests, c.httpDuration, c.providerCalls, c.partialFailures)
	return c
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordProviderCall records the outcome of one downstream call.
func (c *Collector) RecordProviderCall(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.providerCalls.WithLabelValues(operation, outcome).Inc()
}

// RecordPartialFailure records a saga left half done.
func (c *Collector) RecordPartialFailure(operation string) {
	c.partialFailures.WithLabelValues(operation).Inc()
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordProviderCall(string, error) {}
func (Nop) RecordPartialFailure(string)      {}
