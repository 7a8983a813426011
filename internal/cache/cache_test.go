package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_DisabledLimit(t *testing.T) {
	limiter := NewRateLimiter(nil, "auth", 0, time.Minute)
	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	}
}

func TestRateLimiter_NilLimiterAllows(t *testing.T) {
	var limiter *RateLimiter
	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
}

func TestRateLimiter_FailsOpenWhenRedisUnavailable(t *testing.T) {
	// Nothing listens on port 1; every increment errors and counts as zero.
	client := New("127.0.0.1:1", "", 0)
	defer client.Close()

	limiter := NewRateLimiter(client, "auth", 1, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
}

func TestClient_NilIsSafe(t *testing.T) {
	var c *Client
	assert.Equal(t, int64(0), c.Incr(context.Background(), "k", time.Second))
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
