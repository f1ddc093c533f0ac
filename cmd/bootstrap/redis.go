package bootstrap

import (
	"context"

	"tablebook/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient builds the client without dialing; the first lock
// operation establishes the connection, so deployments that never select
// the redis lock backend pay nothing for this provider.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
