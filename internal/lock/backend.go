package lock

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConcurrentReservation is the business outcome of lock contention:
	// another request is booking the same slot right now.
	ErrConcurrentReservation = errors.New("another reservation for this slot is in progress")

	// ErrBackendUnavailable marks infrastructure failure of the lock store.
	// It is never folded into contention and never treated as success.
	ErrBackendUnavailable = errors.New("lock backend unavailable")
)

// Info describes one currently held lock, best-effort.
type Info struct {
	Key        string    `json:"key"`
	Token      string    `json:"token"`
	AcquiredAt time.Time `json:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Backend is the mutual-exclusion primitive behind the Manager. Acquire is
// an atomic set-if-absent; Release is compare-and-delete, refusing tokens
// it does not hold. ActiveLocks is best-effort: backends that cannot
// enumerate return what they track locally and log, never error.
type Backend interface {
	Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, token string) (bool, error)
	IsLocked(ctx context.Context, key string) (bool, error)
	ForceUnlock(ctx context.Context, key string) (bool, error)
	ActiveLocks(ctx context.Context) []Info
}
