// Package metrics exposes Prometheus collectors for the vcatlas service.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for processed URLs.
const (
	OutcomeOK            = "ok"
	OutcomeFetchFailed   = "fetch_failed"
	OutcomeExtractFailed = "extract_failed"
	OutcomeIndexFailed   = "index_failed"
)

var (
	processTotal               *prometheus.CounterVec
	dedupHitsTotal             prometheus.Counter
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		processTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcatlas_process_total",
				Help: "Total number of process-url passes, labeled by site and outcome.",
			},
			[]string{"site", "outcome"},
		)

		dedupHitsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vcatlas_dedup_hits_total",
				Help: "Total number of extractions whose firm name was already stored.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15, 60},
			},
			[]string{"method", "route"},
		)
	})
}

// SanitizeSite sanitizes a URL to extract a lowercase hostname.
// It returns "unknown" if the URL is invalid.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveProcess increments the processed-URL counter.
func ObserveProcess(site, outcome string) {
	processTotal.WithLabelValues(SanitizeSite(site), outcome).Inc()
}

// ObserveDedupHit increments the dedup hit counter.
func ObserveDedupHit() {
	dedupHitsTotal.Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
