// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"estate-match-backend/internal/common/database"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const snapshotCacheKey = "catalog:snapshot"

// SnapshotCache persists the latest catalog snapshot in Redis so a
// restarted instance can serve properties before its first feed fetch
// completes. It is best-effort: cache failures are logged and swallowed.
type SnapshotCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewSnapshotCache(redisClient *database.RedisClient, ttl time.Duration, log logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		redis:  redisClient,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

// Store writes the snapshot under the cache key with the configured TTL.
func (c *SnapshotCache) Store(ctx context.Context, properties []models.Property) {
	data, err := json.Marshal(properties)
	if err != nil {
		c.logger.WithError(err).Warn("failed to marshal catalog snapshot", nil)
		return
	}

	if err := c.redis.Set(ctx, snapshotCacheKey, data, c.ttl); err != nil {
		c.logger.WithError(err).Warn("failed to cache catalog snapshot", nil)
	}
}

// Load reads the cached snapshot. A miss returns (nil, nil); callers
// treat nil as "no warm copy available".
func (c *SnapshotCache) Load(ctx context.Context) ([]models.Property, error) {
	data, err := c.redis.Get(ctx, snapshotCacheKey)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var properties []models.Property
	if err := json.Unmarshal([]byte(data), &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Invalidate drops the cached snapshot.
func (c *SnapshotCache) Invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, snapshotCacheKey); err != nil {
		c.logger.WithError(err).Warn("failed to invalidate catalog snapshot cache", nil)
	}
}
