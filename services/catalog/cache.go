package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"detailing/models"

	"github.com/go-redis/redis/v8"
)

// CatalogCachePrefix is the prefix used for catalog cache keys.
const CatalogCachePrefix = "catalog:"

// Cache stores the full catalog listing.
type Cache interface {
	// Get returns the cached listing and whether it was present.
	Get(ctx context.Context) ([]models.Service, bool, error)
	Set(ctx context.Context, services []models.Service) error
	Invalidate(ctx context.Context) error
}

// RedisCache implements Cache with a single JSON-encoded Redis key.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache holding the listing for ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: CatalogCachePrefix + "all", ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]models.Service, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}
	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	return services, true, nil
}

func (c *RedisCache) Set(ctx context.Context, services []models.Service) error {
	raw, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("catalog cache invalidate: %w", err)
	}
	return nil
}
