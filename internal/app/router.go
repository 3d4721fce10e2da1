package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/handler"
	"github.com/Lucasteisouza/shopper-ride/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler   *handler.RideHandler
	DriverHandler *handler.DriverHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
	Logger        *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient, deps.Logger))
	}

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Ride routes.
	ride := router.Group("/ride")
	{
		ride.POST("/estimate", deps.RideHandler.Estimate)
		ride.POST("/confirm", deps.RideHandler.Confirm)
		ride.GET("/history/:customer_id", deps.RideHandler.History)
		ride.GET("/active", deps.RideHandler.Active)
		ride.POST("/:ride_id/complete", deps.RideHandler.Complete)
	}

	// Driver catalog.
	router.GET("/drivers", deps.DriverHandler.GetAll)

	return router
}
