package lock

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only when the caller still owns it,
// preventing a late release from deleting a lock that expired and was
// re-acquired by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
else
    return 0
end
`)

// RedisBackend locks via SET NX with bounded retries inside an overall
// wait budget. Redis connectivity failures surface as ErrBackendUnavailable,
// never as contention.
type RedisBackend struct {
	client    *redis.Client
	retryWait time.Duration
	maxWait   time.Duration
	logger    *slog.Logger
}

func NewRedisBackend(client *redis.Client, retryWait, maxWait time.Duration, logger *slog.Logger) *RedisBackend {
	if retryWait <= 0 {
		retryWait = 100 * time.Millisecond
	}
	return &RedisBackend{
		client:    client,
		retryWait: retryWait,
		maxWait:   maxWait,
		logger:    logger,
	}
}

func (b *RedisBackend) Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	deadline := time.Now().Add(b.maxWait)
	for {
		ok, err := b.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return false, errs.Mark(errs.Wrap(err, "redis setnx failed"), ErrBackendUnavailable)
		}
		if ok {
			return true, nil
		}
		if b.maxWait <= 0 || time.Now().Add(b.retryWait).After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(b.retryWait):
		}
	}
}

func (b *RedisBackend) Release(ctx context.Context, key, token string) (bool, error) {
	deleted, err := releaseScript.Run(ctx, b.client, []string{key}, token).Int()
	if err != nil {
		return false, errs.Mark(errs.Wrap(err, "redis release script failed"), ErrBackendUnavailable)
	}
	return deleted > 0, nil
}

func (b *RedisBackend) IsLocked(ctx context.Context, key string) (bool, error) {
	n, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errs.Mark(errs.Wrap(err, "redis exists failed"), ErrBackendUnavailable)
	}
	return n > 0, nil
}

func (b *RedisBackend) ForceUnlock(ctx context.Context, key string) (bool, error) {
	n, err := b.client.Del(ctx, key).Result()
	if err != nil {
		return false, errs.Mark(errs.Wrap(err, "redis del failed"), ErrBackendUnavailable)
	}
	return n > 0, nil
}

// ActiveLocks scans for reservation lock keys. Best-effort: scan or value
// errors are logged and whatever was collected so far is returned.
func (b *RedisBackend) ActiveLocks(ctx context.Context) []Info {
	var out []Info
	iter := b.client.Scan(ctx, 0, keyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		token, err := b.client.Get(ctx, key).Result()
		if err != nil {
			continue // expired between scan and get
		}
		info := Info{Key: key, Token: token}
		if ttl, err := b.client.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			info.ExpiresAt = time.Now().Add(ttl)
		}
		out = append(out, info)
	}
	if err := iter.Err(); err != nil {
		b.logger.Warn("redis lock enumeration incomplete", "error", err)
	}
	return out
}
