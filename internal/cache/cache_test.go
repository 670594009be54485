package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hireboard/hireboard/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis starts an in-process miniredis and returns a connected RedisCache.
func setupRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, rc.Close()) })

	return rc, mr
}

func TestPing(t *testing.T) {
	rc, _ := setupRedis(t)
	assert.NoError(t, rc.Ping(context.Background()))
}

func TestSetGet_Roundtrip(t *testing.T) {
	rc, _ := setupRedis(t)
	ctx := context.Background()

	err := rc.Set(ctx, "test:key", []byte("hello"), 10*time.Second)
	require.NoError(t, err)

	val, found, err := rc.Get(ctx, "test:key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("hello"), val)
}

func TestGet_NotFound(t *testing.T) {
	rc, _ := setupRedis(t)

	val, found, err := rc.Get(context.Background(), "nonexistent:key")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, val)
}

func TestSet_TTLExpiry(t *testing.T) {
	rc, mr := setupRedis(t)
	ctx := context.Background()

	err := rc.Set(ctx, "expiring:key", []byte("gone soon"), time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, found, err := rc.Get(ctx, "expiring:key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	rc, _ := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "doomed:key", []byte("x"), time.Minute))
	require.NoError(t, rc.Delete(ctx, "doomed:key"))

	_, found, err := rc.Get(ctx, "doomed:key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	rc, _ := setupRedis(t)
	assert.NoError(t, rc.Delete(context.Background(), "never:existed"))
}

func TestIncrWithExpiry(t *testing.T) {
	rc, mr := setupRedis(t)
	ctx := context.Background()

	n, err := rc.IncrWithExpiry(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = rc.IncrWithExpiry(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mr.FastForward(2 * time.Minute)

	n, err = rc.IncrWithExpiry(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:abc", cache.SessionKey("abc"))
	assert.Equal(t, "ratelimit:1.2.3.4", cache.RateLimitKey("1.2.3.4"))
}
