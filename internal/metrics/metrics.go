// Package metrics exposes Prometheus collectors for the proxy service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	proxyRequestsTotal         *prometheus.CounterVec
	viewRecordFailuresTotal    prometheus.Counter
	resolveStoreErrorsTotal    prometheus.Counter
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus collectors. Safe to call more than once.
func Init() {
	once.Do(func() {
		proxyRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seopages_proxy_requests_total",
				Help: "Total proxy requests, labeled by outcome (hit, project_miss, page_miss, verify).",
			},
			[]string{"outcome"},
		)

		viewRecordFailuresTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "seopages_view_record_failures_total",
				Help: "Total page-view writes that failed after a served page.",
			},
		)

		resolveStoreErrorsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "seopages_resolve_store_errors_total",
				Help: "Total store failures during resolution, served as 404 but distinct from genuine misses.",
			},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seopages_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and code.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "code"},
		)
	})
}

// ObserveProxyRequest counts one proxy request by outcome.
func ObserveProxyRequest(outcome string) {
	if proxyRequestsTotal != nil {
		proxyRequestsTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveViewRecordFailure counts one dropped page-view write.
func ObserveViewRecordFailure() {
	if viewRecordFailuresTotal != nil {
		viewRecordFailuresTotal.Inc()
	}
}

// ObserveResolveStoreError counts one store failure during resolution.
func ObserveResolveStoreError() {
	if resolveStoreErrorsTotal != nil {
		resolveStoreErrorsTotal.Inc()
	}
}

// ObserveRequest records the latency of one HTTP request.
func ObserveRequest(method string, code int, duration time.Duration) {
	if httpRequestDurationSeconds != nil {
		httpRequestDurationSeconds.WithLabelValues(method, strconv.Itoa(code)).Observe(duration.Seconds())
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
