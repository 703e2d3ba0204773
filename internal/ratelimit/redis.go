package ratelimit

import (
	"context"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisLimiter shares counters across server instances. Keys expire with the
// window, so there is no sweep to run; Redis evicts them itself.
type RedisLimiter struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisLimiter(client *redis.Client, logger zerolog.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger.With().Str("component", "rate_limiter_redis").Logger(),
	}
}

var _ Limiter = (*RedisLimiter)(nil)

func (l *RedisLimiter) key(identifier, operation string) string {
	return "ratelimit:" + operation + ":" + identifier
}

// Check implements Limiter with INCR + PEXPIRE. The expiry is only set on the
// first increment of a window so later requests do not slide it forward.
func (l *RedisLimiter) Check(ctx context.Context, identifier, operation string, max int, window time.Duration) (Result, error) {
	key := l.key(identifier, operation)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, key, window).Err(); err != nil {
			return Result{}, err
		}
	}

	if count <= int64(max) {
		return Result{Allowed: true}, nil
	}

	ttl, err := l.client.PTTL(ctx, key).Result()
	if err != nil {
		return Result{}, err
	}
	retryAfter := int(math.Ceil(ttl.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return Result{Allowed: false, RetryAfter: retryAfter}, nil
}
