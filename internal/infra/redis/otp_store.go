// File: internal/infra/redis/otp_store.go
package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"rental-marketplace/internal/domain/ports/adapter"
)

var _ adapter.OTPStore = (*OTPStore)(nil)

// OTPStore keeps password-reset codes with a TTL. A hit consumes the code,
// so replaying a captured reset request cannot succeed twice.
type OTPStore struct {
	client RedisClient
}

func NewOTPStore(client RedisClient) *OTPStore {
	return &OTPStore{client: client}
}

func otpKey(phone string) string { return "otp:" + phone }

func (s *OTPStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(phone), code, ttl)
}

func (s *OTPStore) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.client.Get(ctx, otpKey(phone))
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := s.client.Del(ctx, otpKey(phone)); err != nil {
		return false, err
	}
	return true, nil
}
