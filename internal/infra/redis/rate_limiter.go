// File: internal/infra/redis/rate_limiter.go
package redis

import (
	"context"
	"time"

	"rental-marketplace/internal/domain/ports/adapter"
)

var _ adapter.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a fixed-window counter; the first hit in a window sets the
// expiry.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, "rate_limit:"+key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, "rate_limit:"+key, window); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}
