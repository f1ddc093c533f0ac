package lock

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Manager wraps the configured backend behind the reservation-flavored
// locking contract. The backend is chosen once at startup.
type Manager struct {
	backend Backend
	ttl     time.Duration
	bucket  time.Duration
	logger  *slog.Logger
}

func NewManager(backend Backend, ttl, bucket time.Duration, logger *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Manager{
		backend: backend,
		ttl:     ttl,
		bucket:  bucket,
		logger:  logger,
	}
}

// WithLock runs fn under the slot lock. fn never runs when acquisition
// fails, and the lock is released on every exit path including panics. The
// release uses a non-cancelable context so a canceled request cannot leak
// its lock.
func (m *Manager) WithLock(ctx context.Context, restaurantID uuid.UUID, at time.Time, partySize int, fn func(ctx context.Context) error) error {
	key := Key(restaurantID, at, partySize, m.bucket)
	token := NewToken()

	acquired, err := m.backend.Acquire(ctx, key, token, m.ttl)
	if err != nil {
		return err
	}
	if !acquired {
		return errs.Wrapf(ErrConcurrentReservation, "lock %s is held", key)
	}

	defer func() {
		released, releaseErr := m.backend.Release(context.WithoutCancel(ctx), key, token)
		if releaseErr != nil {
			m.logger.Error("failed to release reservation lock", "key", key, "error", releaseErr)
			return
		}
		if !released {
			// Expired and possibly re-acquired by another owner; the
			// token check already protected them from our delete.
			m.logger.Warn("reservation lock no longer owned at release", "key", key, "token", token)
		}
	}()

	return fn(ctx)
}

func (m *Manager) IsLocked(ctx context.Context, key string) (bool, error) {
	return m.backend.IsLocked(ctx, key)
}

func (m *Manager) ForceUnlock(ctx context.Context, key string) (bool, error) {
	forced, err := m.backend.ForceUnlock(ctx, key)
	if err != nil {
		return false, err
	}
	if forced {
		m.logger.Warn("reservation lock forcibly released", "key", key)
	}
	return forced, nil
}

func (m *Manager) ActiveLocks(ctx context.Context) []Info {
	return m.backend.ActiveLocks(ctx)
}

// BuildKey exposes key construction for the operator lock endpoints.
func (m *Manager) BuildKey(restaurantID uuid.UUID, at time.Time, partySize int) string {
	return Key(restaurantID, at, partySize, m.bucket)
}
