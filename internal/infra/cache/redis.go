package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type RedisStatsCache struct {
	client redis.Cmdable
}

func NewRedisStatsCache(client redis.Cmdable) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func (c *RedisStatsCache) GetStats(ctx context.Context, key string) (*queries.BookingStats, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var stats queries.BookingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

func (c *RedisStatsCache) SetStats(ctx context.Context, key string, stats *queries.BookingStats, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// NopStatsCache always misses. Used when Redis is disabled.
type NopStatsCache struct{}

func (NopStatsCache) GetStats(context.Context, string) (*queries.BookingStats, bool, error) {
	return nil, false, nil
}

func (NopStatsCache) SetStats(context.Context, string, *queries.BookingStats, time.Duration) error {
	return nil
}
