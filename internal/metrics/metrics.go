// Package metrics provides the centralized Prometheus metrics registry for the predictor.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "four_factors"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Stats provider metrics
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Total number of stats provider requests by endpoint and status",
	}, []string{"endpoint", "status"})

	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of stats provider requests in seconds, including rate limit waits",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})
)

// Prediction cache metrics
var (
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_hits_total",
		Help:      "Total number of team stats lookups served from the run cache",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_misses_total",
		Help:      "Total number of team stats lookups fetched from the provider",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(ProviderRequestDuration)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestGamesTotal)
		registry.MustRegister(BacktestAccuracy)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(PredictedWinnerConfidence)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordProviderRequest records a stats provider request.
// status should be one of: "success", "error", "rate_limited", "not_found"
func RecordProviderRequest(endpoint, status string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(endpoint, status).Inc()
	ProviderRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordCacheHit records a cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}
