package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	portcache "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/redis/go-redis/v9"
)

// KeyValueStore is the subset of the redis client the cache needs
type KeyValueStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type cachedProvider struct {
	UserID                  string `json:"userId"`
	Name                    string `json:"name"`
	TotalMBShared           int64  `json:"totalMbShared"`
	TotalSessionsAsProvider int64  `json:"totalSessionsAsProvider"`
}

// RedisProviderCache keeps the available provider snapshot as one JSON value
type RedisProviderCache struct {
	store  KeyValueStore
	key    string
	ttl    time.Duration
	logger coreport.Logger
}

// NewRedisProviderCache creates a provider cache under <prefix>:providers:available
func NewRedisProviderCache(store KeyValueStore, prefix string, ttl time.Duration, logger coreport.Logger) *RedisProviderCache {
	return &RedisProviderCache{
		store:  store,
		key:    prefix + ":providers:available",
		ttl:    ttl,
		logger: logger,
	}
}

var _ portcache.ProviderCache = (*RedisProviderCache)(nil)

// GetAvailable returns the snapshot. Any redis failure reads as a miss.
func (c *RedisProviderCache) GetAvailable(ctx context.Context) ([]entity.ProviderSummary, bool) {
	raw, err := c.store.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Provider cache read failed", map[string]any{"error": err.Error()})
		}
		return nil, false
	}

	var cached []cachedProvider
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("Discarding unreadable provider cache entry", map[string]any{"error": err.Error()})
		c.Invalidate(ctx)
		return nil, false
	}

	out := make([]entity.ProviderSummary, 0, len(cached))
	for _, p := range cached {
		out = append(out, entity.ProviderSummary{
			UserID:                  p.UserID,
			Name:                    p.Name,
			TotalMBShared:           p.TotalMBShared,
			TotalSessionsAsProvider: p.TotalSessionsAsProvider,
		})
	}
	return out, true
}

// SetAvailable stores the snapshot with the configured TTL
func (c *RedisProviderCache) SetAvailable(ctx context.Context, providers []entity.ProviderSummary) {
	cached := make([]cachedProvider, 0, len(providers))
	for _, p := range providers {
		cached = append(cached, cachedProvider(p))
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Provider cache write failed", map[string]any{"error": err.Error()})
	}
}

// Invalidate drops the snapshot
func (c *RedisProviderCache) Invalidate(ctx context.Context) {
	if err := c.store.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn("Provider cache invalidation failed", map[string]any{"error": err.Error()})
	}
}
