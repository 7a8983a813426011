package cache

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter counts requests per key in fixed windows stored in redis.
// When redis is unreachable every request is allowed.
type RateLimiter struct {
	cache  *Client
	prefix string
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// A non-positive limit disables limiting.
func NewRateLimiter(cache *Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{cache: cache, prefix: prefix, limit: limit, window: window}
}

// Allow records one request for key and reports whether it is within the limit.
func (r *RateLimiter) Allow(ctx context.Context, key string) bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	count := r.cache.Incr(ctx, fmt.Sprintf("ratelimit:%s:%s", r.prefix, key), r.window)
	return count <= int64(r.limit)
}
