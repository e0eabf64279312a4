// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pathway-workers/internal/common/metrics"
	"pathway-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "user:profile:"
	weightsKey       = "algorithm:weights:" + DefaultWeightsID
)

// Cache is a read-through cache in front of PostgresStore. A miss returns
// (nil, nil); only transport failures are errors.
type Cache struct {
	rdb        redis.Cmdable
	profileTTL time.Duration
	weightsTTL time.Duration
}

func NewCache(rdb redis.Cmdable, profileTTL, weightsTTL time.Duration) *Cache {
	return &Cache{rdb: rdb, profileTTL: profileTTL, weightsTTL: weightsTTL}
}

func ProfileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (c *Cache) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	ok, err := c.get(ctx, "profile", ProfileKey(userID), &p)
	if !ok || err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Cache) SetProfile(ctx context.Context, p *models.UserProfile) error {
	return c.set(ctx, ProfileKey(p.UserID), p, c.profileTTL)
}

func (c *Cache) InvalidateProfile(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, ProfileKey(userID)).Err()
}

func (c *Cache) GetWeights(ctx context.Context) (*models.WeightConfig, error) {
	var w models.WeightConfig
	ok, err := c.get(ctx, "weights", weightsKey, &w)
	if !ok || err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Cache) SetWeights(ctx context.Context, w models.WeightConfig) error {
	return c.set(ctx, weightsKey, w, c.weightsTTL)
}

func (c *Cache) InvalidateWeights(ctx context.Context) error {
	return c.rdb.Del(ctx, weightsKey).Err()
}

func (c *Cache) get(ctx context.Context, kind, key string, dst interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next set
		metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return false, nil
	}
	metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
