package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EstimatesTotal      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "shopper_ride", Name: "estimates_total", Help: "Total number of ride estimates served"})
	ConfirmationsTotal  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "shopper_ride", Name: "confirmations_total", Help: "Total number of rides confirmed"})
	CompletionsTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "shopper_ride", Name: "completions_total", Help: "Total number of rides completed"})
	RouteCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shopper_ride", Name: "route_cache_lookups_total", Help: "Route cache lookups by result"},
		[]string{"result"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shopper_ride", Name: "provider_requests_total", Help: "Routing provider requests by outcome"},
		[]string{"outcome"},
	)
	ProviderLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shopper_ride",
		Name:      "provider_request_duration_seconds",
		Help:      "Routing provider request latency distribution",
		Buckets:   prometheus.DefBuckets,
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shopper_ride", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopper_ride",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
