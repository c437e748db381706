package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/internal/api"
	"github.com/pageza/mealmind/backend/internal/middleware"
)

// Options carries the cross-cutting pieces of the route table
type Options struct {
	AllowedOrigins []string
	Logger         *zap.Logger
	Health         *api.HealthHandler
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	// RateLimiter guards generation routes; nil leaves them unguarded.
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(svc api.Services, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(opts.Logger),
		middleware.RequestLogger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	if opts.Health != nil {
		router.GET("/health", opts.Health.HealthCheck)
	}
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	var limit gin.HandlerFunc
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Middleware()
	}

	api.RegisterRoutes(router.Group("/api/v1"), svc, limit)
	return router
}
