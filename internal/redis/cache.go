package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Lucasteisouza/shopper-ride/internal/domain"
)

// CacheStore caches routing-provider results in Redis. Route geometry for an
// address pair is stable over short windows, and provider calls are both slow
// and billable, so identical origin/destination lookups are served from cache.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultRouteTTL bounds staleness of cached routes. Traffic-dependent
// duration text drifts, so the window is kept short.
const DefaultRouteTTL = 2 * time.Minute

const routeCachePrefix = "cache:route:"

// NewCacheStore creates a new CacheStore. A non-positive ttl falls back to
// DefaultRouteTTL.
func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	return &CacheStore{client: client, ttl: ttl}
}

func routeKey(origin, destination string) string {
	return routeCachePrefix + origin + "|" + destination
}

// GetRoute returns the cached route for an address pair, or nil on a miss.
func (s *CacheStore) GetRoute(ctx context.Context, origin, destination string) (*domain.Route, error) {
	data, err := s.client.Get(ctx, routeKey(origin, destination)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var route domain.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// SetRoute stores a route for an address pair with the configured TTL.
func (s *CacheStore) SetRoute(ctx context.Context, origin, destination string, route *domain.Route) error {
	data, err := json.Marshal(route)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, routeKey(origin, destination), data, s.ttl).Err()
}
