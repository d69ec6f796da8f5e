package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBurstThenDeny(t *testing.T) {
	l := NewMemoryLimiter(1, 2, time.Hour)
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "ip:5.6.7.8")
	assert.True(t, ok, "keys are independent")
}

func TestMemoryLimiterEvictsIdleKeys(t *testing.T) {
	l := NewMemoryLimiter(60, 1, time.Hour)
	defer l.Stop()

	_, _ = l.Allow(context.Background(), "profile:a")
	require.Len(t, l.clients, 1)

	l.evictIdle(time.Now().Add(time.Second))
	assert.Empty(t, l.clients)
}

func TestMemoryLimiterStopIsIdempotent(t *testing.T) {
	l := NewMemoryLimiter(60, 1, time.Hour)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestRedisLimiterReturnsBackendErrors(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	l := NewRedisLimiter(rdb, 10, time.Minute, "test")
	ok, err := l.Allow(context.Background(), "ip:1.2.3.4")

	assert.Error(t, err)
	assert.False(t, ok)
}
