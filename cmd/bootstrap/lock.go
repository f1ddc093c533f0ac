package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"tablebook/internal/lock"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewLockBackend,
		NewLockManager,
	),
)

func NewLockBackend(cfg config.Config, pool *pgxpool.Pool, client *redis.Client, clk clock.Clock, logger *slog.Logger) (lock.Backend, error) {
	switch cfg.Lock.Backend {
	case "memory":
		return lock.NewMemoryBackend(clk), nil
	case "redis":
		return lock.NewRedisBackend(client, cfg.Lock.RetryWait, cfg.Lock.MaxWait, logger), nil
	case "postgres":
		return lock.NewAdvisoryBackend(pool, cfg.Lock.AdvisoryWait, logger), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Lock.Backend)
	}
}

func NewLockManager(cfg config.Config, backend lock.Backend, logger *slog.Logger) *lock.Manager {
	bucket := time.Duration(cfg.Lock.BucketMin) * time.Minute
	return lock.NewManager(backend, cfg.Lock.TTL, bucket, logger)
}
