package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow = 15 * time.Minute
	throttleLimit  = 10
)

// LoginThrottle counts failed login attempts per email in Redis.
// Key format: loginfail:<email>, expiring after the throttle window.
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// TooMany reports whether the subject has exhausted its failure budget
// within the current window.
func (t *LoginThrottle) TooMany(ctx context.Context, subject string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(subject)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= throttleLimit, nil
}

// RecordFailure bumps the subject's failure counter. The window starts at
// the first failure and is not extended by later ones.
func (t *LoginThrottle) RecordFailure(ctx context.Context, subject string) error {
	key := t.key(subject)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, throttleWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Clear resets the counter after a successful login.
func (t *LoginThrottle) Clear(ctx context.Context, subject string) error {
	return t.client.Del(ctx, t.key(subject)).Err()
}

func (t *LoginThrottle) key(subject string) string {
	return "loginfail:" + strings.ToLower(strings.TrimSpace(subject))
}
