package adapter

import (
	"context"
	"time"
)

// OTPStore holds short-lived one-time codes for password reset. Codes are
// single use: a successful Verify consumes the code.
type OTPStore interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// RateLimiter is a fixed-window counter keyed by caller-chosen strings.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
