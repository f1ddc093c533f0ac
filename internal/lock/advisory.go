package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tablebook/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

type advisoryHold struct {
	conn       *pgxpool.Conn
	token      string
	keyID      int64
	acquiredAt time.Time
}

// AdvisoryBackend uses Postgres session advisory locks. Each held lock pins
// one pooled connection until release so the lock can never leak to another
// request reusing the connection. Acquisition polls pg_try_advisory_lock up
// to a wait budget instead of blocking a pool connection indefinitely.
type AdvisoryBackend struct {
	pool    *pgxpool.Pool
	maxWait time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	holds map[string]*advisoryHold
}

func NewAdvisoryBackend(pool *pgxpool.Pool, maxWait time.Duration, logger *slog.Logger) *AdvisoryBackend {
	return &AdvisoryBackend{
		pool:    pool,
		maxWait: maxWait,
		logger:  logger,
		holds:   make(map[string]*advisoryHold),
	}
}

func (b *AdvisoryBackend) Acquire(ctx context.Context, key, token string, _ time.Duration) (bool, error) {
	keyID := AdvisoryKeyID(key)

	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return false, errs.Mark(errs.Wrap(err, "failed to acquire connection for advisory lock"), ErrBackendUnavailable)
	}

	deadline := time.Now().Add(b.maxWait)
	for {
		var locked bool
		if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, keyID).Scan(&locked); err != nil {
			conn.Release()
			return false, errs.Mark(errs.Wrap(err, "advisory lock query failed"), ErrBackendUnavailable)
		}
		if locked {
			break
		}
		if b.maxWait <= 0 || !time.Now().Before(deadline) {
			conn.Release()
			return false, nil
		}
		select {
		case <-ctx.Done():
			conn.Release()
			return false, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	b.mu.Lock()
	b.holds[key] = &advisoryHold{
		conn:       conn,
		token:      token,
		keyID:      keyID,
		acquiredAt: time.Now(),
	}
	b.mu.Unlock()
	return true, nil
}

func (b *AdvisoryBackend) Release(ctx context.Context, key, token string) (bool, error) {
	b.mu.Lock()
	hold, ok := b.holds[key]
	if !ok || hold.token != token {
		b.mu.Unlock()
		return false, nil
	}
	delete(b.holds, key)
	b.mu.Unlock()

	return b.unlock(ctx, hold)
}

func (b *AdvisoryBackend) unlock(ctx context.Context, hold *advisoryHold) (bool, error) {
	defer hold.conn.Release()

	var unlocked bool
	if err := hold.conn.QueryRow(ctx, `SELECT pg_advisory_unlock($1)`, hold.keyID).Scan(&unlocked); err != nil {
		// Closing the session releases the lock anyway.
		return false, errs.Mark(errs.Wrap(err, "advisory unlock query failed"), ErrBackendUnavailable)
	}
	return unlocked, nil
}

// IsLocked checks pg_locks so holds from other processes are visible too.
// The 64-bit advisory key is stored split across classid (high) and objid
// (low).
func (b *AdvisoryBackend) IsLocked(ctx context.Context, key string) (bool, error) {
	keyID := AdvisoryKeyID(key)
	var locked bool
	err := b.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_locks
			WHERE locktype = 'advisory' AND classid = $1 AND objid = $2
		)`, uint32(keyID>>32), uint32(keyID)).Scan(&locked) // #nosec G115 -- intentional 32-bit split
	if err != nil {
		return false, errs.Mark(errs.Wrap(err, "pg_locks query failed"), ErrBackendUnavailable)
	}
	return locked, nil
}

// ForceUnlock can only break locks this process holds: Postgres refuses to
// unlock another session's advisory lock.
func (b *AdvisoryBackend) ForceUnlock(ctx context.Context, key string) (bool, error) {
	b.mu.Lock()
	hold, ok := b.holds[key]
	if ok {
		delete(b.holds, key)
	}
	b.mu.Unlock()

	if !ok {
		b.logger.Warn("force unlock of advisory lock held by another session is not possible", "key", key)
		return false, nil
	}
	return b.unlock(ctx, hold)
}

// ActiveLocks enumerates only locally tracked holds; advisory locks held by
// other processes carry no key string to report.
func (b *AdvisoryBackend) ActiveLocks(_ context.Context) []Info {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Info, 0, len(b.holds))
	for key, hold := range b.holds {
		out = append(out, Info{
			Key:        key,
			Token:      hold.token,
			AcquiredAt: hold.acquiredAt,
		})
	}
	return out
}
