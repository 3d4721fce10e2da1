package maps

import (
	"context"

	"go.uber.org/zap"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
	"github.com/Lucasteisouza/shopper-ride/internal/observability"
	internalredis "github.com/Lucasteisouza/shopper-ride/internal/redis"
)

// RouteSource is anything able to resolve a route for an address pair.
type RouteSource interface {
	CalculateRoute(ctx context.Context, origin, destination string) (*domain.Route, error)
}

// CachedClient wraps a RouteSource with a Redis-backed read-through cache.
// Cache failures are logged and degrade to a direct provider call.
type CachedClient struct {
	source RouteSource
	cache  internalredis.RouteCacheInterface
	logger *zap.Logger
}

// NewCachedClient creates a caching route source.
func NewCachedClient(source RouteSource, cache internalredis.RouteCacheInterface, logger *zap.Logger) *CachedClient {
	return &CachedClient{source: source, cache: cache, logger: logger}
}

// CalculateRoute serves from cache when possible, falling through to the
// underlying provider and populating the cache on success.
func (c *CachedClient) CalculateRoute(ctx context.Context, origin, destination string) (*domain.Route, error) {
	cached, err := c.cache.GetRoute(ctx, origin, destination)
	if err != nil {
		c.logger.Warn("route cache read failed", zap.Error(err))
	}
	if cached != nil {
		observability.RouteCacheHitsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	observability.RouteCacheHitsTotal.WithLabelValues("miss").Inc()

	route, err := c.source.CalculateRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetRoute(ctx, origin, destination, route); err != nil {
		c.logger.Warn("route cache write failed", zap.Error(err))
	}
	return route, nil
}
