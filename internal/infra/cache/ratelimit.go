package cache

import (
	"context"
	"time"

	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter keyed per client.
type RedisRateLimiter struct {
	client redis.Cmdable
	window time.Duration
	limit  int64
}

func NewRedisRateLimiter(client redis.Cmdable, cfg config.RateLimitConfig) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		window: cfg.Window,
		limit:  cfg.MaxRequests,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (shared.RateLimitResult, error) {
	key = "ratelimit:" + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return shared.RateLimitResult{}, err
	}

	reset := ttl.Val()
	// first hit in the window, or a key that lost its expiry
	if reset < 0 {
		if err := l.client.PExpire(ctx, key, l.window).Err(); err != nil {
			return shared.RateLimitResult{}, err
		}
		reset = l.window
	}

	count := incr.Val()
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return shared.RateLimitResult{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   reset,
	}, nil
}
