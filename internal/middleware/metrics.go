package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis command errors",
	},
	[]string{"command"},
)

// FeedRequests counts feed reads by feed kind.
var FeedRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ripple_feed_requests_total",
		Help: "Total number of feed requests served",
	},
	[]string{"feed"},
)

// InitMetrics creates the Prometheus middleware for HTTP metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
