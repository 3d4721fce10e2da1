package redis

import (
	"context"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
)

// RouteCacheInterface defines the interface for route caching operations.
type RouteCacheInterface interface {
	GetRoute(ctx context.Context, origin, destination string) (*domain.Route, error)
	SetRoute(ctx context.Context, origin, destination string, route *domain.Route) error
}

// Ensure concrete type implements the interface.
var _ RouteCacheInterface = (*CacheStore)(nil)
