package bootstrap

import (
	"context"
	"log/slog"

	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/infra/cache"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewStatsCache,
		NewRateLimiter,
	),
)

// NewRedis returns nil when Redis is disabled; dependants fall back to in-process behavior.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled: stats cache and rate limiting are off")
		return nil, nil
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewStatsCache(client *redis.Client) queries.StatsCache {
	if client == nil {
		return cache.NopStatsCache{}
	}
	return cache.NewRedisStatsCache(client)
}

func NewRateLimiter(client *redis.Client, cfg config.Config) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return cache.NewRedisRateLimiter(client, cfg.RateLimit)
}
