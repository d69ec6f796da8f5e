package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed window counter shared by every replica.
type RedisLimiter struct {
	rdb       redis.UniversalClient
	limit     int
	window    time.Duration
	keyPrefix string
}

// NewRedisLimiter allows limit events per window for each key.
func NewRedisLimiter(rdb redis.UniversalClient, limit int, window time.Duration, keyPrefix string) *RedisLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, keyPrefix: keyPrefix}
}

// Allow increments the window counter for key. Errors are returned so the
// caller can decide to fail open.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.keyPrefix + ":" + key
	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", redisKey, err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", redisKey, err)
		}
	}
	return count <= int64(l.limit), nil
}
