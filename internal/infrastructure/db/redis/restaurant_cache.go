package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
	"github.com/dimermichel/quickbite/internal/infrastructure/metrics"
)

const defaultCacheTTL = 5 * time.Minute

var _ ports.RestaurantCache = (*RestaurantCache)(nil)

// RestaurantCache keeps restaurant snapshots as JSON.
// Key format: restaurant:<id>
type RestaurantCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRestaurantCache(client redis.Cmdable, ttl time.Duration) *RestaurantCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RestaurantCache{client: client, ttl: ttl}
}

// Get returns nil, nil on a miss.
func (c *RestaurantCache) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RestaurantCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.RestaurantCacheTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("restaurant cache get: %w", err)
	}

	var state domain.RestaurantState
	if err := json.Unmarshal(raw, &state); err != nil {
		metrics.RestaurantCacheTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("restaurant cache decode: %w", err)
	}
	metrics.RestaurantCacheTotal.WithLabelValues("hit").Inc()
	return domain.RestoreRestaurant(state), nil
}

func (c *RestaurantCache) Set(ctx context.Context, r *domain.Restaurant) error {
	raw, err := json.Marshal(r.State())
	if err != nil {
		return fmt.Errorf("restaurant cache encode: %w", err)
	}
	return c.client.Set(ctx, key(r.ID()), raw, c.ttl).Err()
}

func (c *RestaurantCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, key(id)).Err()
}

func key(id int64) string {
	return fmt.Sprintf("restaurant:%d", id)
}
