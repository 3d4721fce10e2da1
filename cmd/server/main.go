package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/app"
	"github.com/Lucasteisouza/shopper-ride/internal/config"
	"github.com/Lucasteisouza/shopper-ride/internal/events"
	"github.com/Lucasteisouza/shopper-ride/internal/handler"
	"github.com/Lucasteisouza/shopper-ride/internal/logging"
	"github.com/Lucasteisouza/shopper-ride/internal/maps"
	internalRedis "github.com/Lucasteisouza/shopper-ride/internal/redis"
	"github.com/Lucasteisouza/shopper-ride/internal/repository/postgres"
	"github.com/Lucasteisouza/shopper-ride/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Initialize database.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL")

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Redis.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Seed the driver catalog on first boot.
	driverRepo := postgres.NewDriverRepository(db)
	if err := app.SeedDrivers(ctx, driverRepo, logger); err != nil {
		logger.Fatal("failed to seed drivers", zap.Error(err))
	}

	// Wire dependencies.
	server, publisher := wireServer(db, redisClient, nrApp, cfg, logger)
	if publisher != nil {
		defer publisher.Close()
	}

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server plus the
// Kafka publisher (nil when Kafka is not configured) so main can close it.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	logger *zap.Logger,
) (*http.Server, *events.Publisher) {
	// Repositories.
	driverRepo := postgres.NewDriverRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	// Routing provider with a Redis read-through cache in front.
	mapsClient := maps.NewClient(
		cfg.Maps.BaseURL,
		cfg.Maps.APIKey,
		cfg.Maps.RetryAttempts,
		cfg.Maps.RetryBackoff,
		logger,
	)
	routeCache := internalRedis.NewCacheStore(redisClient, cfg.Maps.CacheTTL)
	routes := maps.NewCachedClient(mapsClient, routeCache, logger)

	// Lifecycle events.
	var publisher *events.Publisher
	var eventSink service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		eventSink = publisher
		logger.Info("kafka publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		eventSink = events.NewLoggingPublisher(logger)
	}

	// Services.
	rideService := service.NewRideService(driverRepo, rideRepo, routes, eventSink, logger)

	// Handlers.
	rideHandler := handler.NewRideHandler(rideService, logger)
	driverHandler := handler.NewDriverHandler(driverRepo, logger)

	// Router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler:   rideHandler,
		DriverHandler: driverHandler,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
		Logger:        logger,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, publisher
}
