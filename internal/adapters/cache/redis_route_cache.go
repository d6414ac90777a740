package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRouteTTL = 24 * time.Hour

// RedisRouteCache caches generated routes by ID so cost and offer requests
// can resolve a route without a repository round trip. A miss falls through
// to the repository; the cache is never authoritative.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(redisURL string, ttl time.Duration) (*RedisRouteCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("route cache: parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = defaultRouteTTL
	}
	return &RedisRouteCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

func (c *RedisRouteCache) GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	payload, err := c.rdb.Get(ctx, routeKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("route cache: get %s: %w", id, err)
	}

	var route domain.Route
	if err := json.Unmarshal([]byte(payload), &route); err != nil {
		return nil, fmt.Errorf("route cache: unmarshal %s: %w", id, err)
	}

	return &route, nil
}

func (c *RedisRouteCache) PutRoute(ctx context.Context, route *domain.Route) error {
	if route == nil {
		return errors.New("route cache: route is nil")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("route cache: marshal %s: %w", route.ID, err)
	}

	if err := c.rdb.Set(ctx, routeKey(route.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache: set %s: %w", route.ID, err)
	}

	return nil
}

func routeKey(id uuid.UUID) string {
	return "route:" + id.String()
}
