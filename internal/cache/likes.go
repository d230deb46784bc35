package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

const (
	// LikeCountPrefix is the key prefix for per-target like counts
	LikeCountPrefix = "likes:count:"

	// LikeCountTTL bounds staleness if an invalidation is ever missed
	LikeCountTTL = time.Hour
)

// LikeCountCache is a read-through cache for per-target active like counts.
// The database stays authoritative; entries are dropped on every mutation.
type LikeCountCache interface {
	// Get returns the cached count. found=false on a miss.
	Get(ctx context.Context, kind model.TargetKind, targetID int64) (count int, found bool, err error)

	// Set stores the count with a TTL.
	Set(ctx context.Context, kind model.TargetKind, targetID int64, count int) error

	// Invalidate drops the cached count for a target. No-op on a miss.
	Invalidate(ctx context.Context, kind model.TargetKind, targetID int64) error
}

// RedisLikeCountCache implements LikeCountCache using plain Redis strings.
type RedisLikeCountCache struct {
	client *redis.Client
}

// NewLikeCountCache creates a LikeCountCache backed by Redis.
func NewLikeCountCache(client *redis.Client) LikeCountCache {
	return &RedisLikeCountCache{client: client}
}

func likeCountKey(kind model.TargetKind, targetID int64) string {
	return fmt.Sprintf("%s%s:%d", LikeCountPrefix, kind, targetID)
}

func (c *RedisLikeCountCache) Get(ctx context.Context, kind model.TargetKind, targetID int64) (int, bool, error) {
	count, err := c.client.Get(ctx, likeCountKey(kind, targetID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get like count: %w", err)
	}
	return count, true, nil
}

func (c *RedisLikeCountCache) Set(ctx context.Context, kind model.TargetKind, targetID int64, count int) error {
	err := c.client.Set(ctx, likeCountKey(kind, targetID), count, LikeCountTTL).Err()
	if err != nil {
		return fmt.Errorf("set like count: %w", err)
	}
	return nil
}

func (c *RedisLikeCountCache) Invalidate(ctx context.Context, kind model.TargetKind, targetID int64) error {
	err := c.client.Del(ctx, likeCountKey(kind, targetID)).Err()
	if err != nil {
		return fmt.Errorf("invalidate like count: %w", err)
	}
	return nil
}
