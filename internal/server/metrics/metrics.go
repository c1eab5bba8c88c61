// Package metrics exposes Prometheus counters and histograms for logins,
// downloads and upstream calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess      = "success"
	ResultUnauthorized = "unauthorized"
	ResultBadRequest   = "bad_request"
	ResultNotFound     = "not_found"
	ResultError        = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	logins           *prometheus.CounterVec
	downloads        *prometheus.CounterVec
	downloadBytes    *prometheus.HistogramVec
	upstreamDuration *prometheus.HistogramVec
}

// New registers the service metrics on a fresh registry together with the
// Go runtime and process collectors.
func New(namespace string) *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	m.downloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Category download requests by category and result.",
	}, []string{"category", "result"})

	m.downloadBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "download_size_bytes",
		Help:      "Size of served CSV files.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"category"})

	m.upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Duration of upstream requests by stage and outcome.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage", "result"})

	m.registry.MustRegister(
		m.logins,
		m.downloads,
		m.downloadBytes,
		m.upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveLogin(result string) {
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDownload(category, result string, size int) {
	m.downloads.WithLabelValues(category, result).Inc()
	if result == ResultSuccess {
		m.downloadBytes.WithLabelValues(category).Observe(float64(size))
	}
}

func (m *Metrics) ObserveUpstream(stage string, started time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.upstreamDuration.WithLabelValues(stage, result).Observe(time.Since(started).Seconds())
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
