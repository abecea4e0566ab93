// Package metrics provides Prometheus metrics for the proxy.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Default histogram buckets for request latency.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics holds all Prometheus metric collectors for the proxy.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	OriginDuration  prometheus.Histogram
	OriginResponses *prometheus.CounterVec
	OriginFailures  prometheus.Counter

	RewrittenDocuments prometheus.Counter
	RewriteReferences  *prometheus.CounterVec
}

// New creates a Metrics instance with a custom registry and all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webproxy_http_requests_total",
			Help: "Total inbound HTTP requests.",
		}, []string{"method", "status_code", "path_prefix"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webproxy_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "status_code", "path_prefix"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "webproxy_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),

		OriginDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "webproxy_origin_fetch_duration_seconds",
			Help:    "Origin fetch latency in seconds, including body read.",
			Buckets: defaultBuckets,
		}),

		OriginResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webproxy_origin_responses_total",
			Help: "Total origin responses by status class.",
		}, []string{"status_class"}),

		OriginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webproxy_origin_failures_total",
			Help: "Total origin fetches that failed without a response.",
		}),

		RewrittenDocuments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webproxy_rewritten_documents_total",
			Help: "Total HTML documents passed through the rewrite engine.",
		}),

		RewriteReferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webproxy_rewrite_references_total",
			Help: "Total references seen by the rewrite engine, by site and outcome.",
		}, []string{"site", "outcome"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.OriginDuration,
		m.OriginResponses,
		m.OriginFailures,
		m.RewrittenDocuments,
		m.RewriteReferences,
	)

	return m
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// knownPrefixes lists the allowed path label values (bounded cardinality).
var knownPrefixes = []string{"/proxy", "/healthz", "/status", "/metrics"}

// NormalizePath returns a bounded path label for Prometheus metrics.
// The proxied target lives in the query string, so it never reaches a label.
func NormalizePath(path string) string {
	if path == "/" {
		return "/"
	}
	for _, prefix := range knownPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(path, prefix+"?") {
			return prefix
		}
	}
	return "other"
}

// StatusClass maps an HTTP status code to "1xx".."5xx", or "other".
func StatusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	}
	return "other"
}
