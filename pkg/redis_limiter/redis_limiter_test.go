package redis_limiter

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRedisLimiter(client, max, "test:", time.Minute, logger), mr
}

func TestRedisLimiter_AcquireRelease(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, "user1"))
	require.NoError(t, limiter.Acquire(ctx, "user1"))
	assert.ErrorIs(t, limiter.Acquire(ctx, "user1"), ErrLimitReached)

	// 其他key不受影响
	assert.NoError(t, limiter.Acquire(ctx, "user2"))

	current, err := limiter.GetCurrent(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	limiter.Release(ctx, "user1")
	assert.NoError(t, limiter.Acquire(ctx, "user1"))
}

func TestRedisLimiter_ReleaseDeletesKey(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, "user1"))
	assert.True(t, mr.Exists("test:user1"))
	assert.Equal(t, time.Minute, mr.TTL("test:user1"))

	limiter.Release(ctx, "user1")
	assert.False(t, mr.Exists("test:user1"))

	current, err := limiter.GetCurrent(ctx, "user1")
	require.NoError(t, err)
	assert.Zero(t, current)
}

func TestRedisLimiter_SlotExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, "user1"))
	assert.ErrorIs(t, limiter.Acquire(ctx, "user1"), ErrLimitReached)

	mr.FastForward(2 * time.Minute)
	assert.NoError(t, limiter.Acquire(ctx, "user1"))
}
