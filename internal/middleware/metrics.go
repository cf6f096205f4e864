package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis failures by operation so cache and rate limit
	// degradation is visible on the dashboard.
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihub_redis_errors_total",
			Help: "Total number of Redis errors by operation",
		},
		[]string{"operation"},
	)

	// InteractionToggles counts like/follow/favorite toggle operations by
	// relation and resulting state.
	InteractionToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihub_interaction_toggles_total",
			Help: "Total number of interaction toggle operations by relation and new state",
		},
		[]string{"relation", "state"},
	)

	// RateLimitHits counts requests rejected by the rate limiter per route group.
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihub_rate_limit_hits_total",
			Help: "Total number of rate limited requests by group",
		},
		[]string{"group"},
	)

	// CacheHits tracks cache-aside outcomes per key family.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihub_cache_requests_total",
			Help: "Total cache lookups by key family and outcome",
		},
		[]string{"family", "outcome"},
	)
)

// InitMetrics creates the fiberprometheus middleware for the given service name.
// The /metrics endpoint is registered by the server during route setup.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

// ObserveToggle records a toggle operation outcome.
func ObserveToggle(relation string, nowSet bool) {
	state := "removed"
	if nowSet {
		state = "added"
	}
	InteractionToggles.WithLabelValues(relation, state).Inc()
}
