package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := DialRedis(ctx, &redis.Options{Addr: mr.Addr()}, "auteur:cache:")
	require.NoError(t, err)
	defer c.Close()

	_, hit, err := c.Get(ctx, "artifact:x")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "artifact:x", []byte("<svg/>"), time.Minute))
	assert.True(t, mr.Exists("auteur:cache:artifact:x"))

	data, hit, err := c.Get(ctx, "artifact:x")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "<svg/>", string(data))

	mr.FastForward(2 * time.Minute)
	_, hit, err = c.Get(ctx, "artifact:x")
	require.NoError(t, err)
	assert.False(t, hit, "entry should expire with its ttl")

	require.NoError(t, c.Set(ctx, "image:y", []byte("z"), 0))
	require.NoError(t, c.Delete(ctx, "image:y"))
	assert.False(t, mr.Exists("auteur:cache:image:y"))
}

func TestDialRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := DialRedis(context.Background(), &redis.Options{Addr: addr, MaxRetries: -1}, "")
	assert.Error(t, err)
}
