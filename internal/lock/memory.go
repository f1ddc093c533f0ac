package lock

import (
	"context"
	"sync"
	"time"

	"tablebook/internal/pkg/clock"
)

type memoryEntry struct {
	token      string
	acquiredAt time.Time
	expiresAt  time.Time
}

// MemoryBackend is a process-local TTL map. Single attempt, no retry:
// contention fails immediately and expiry is lazy on access. Only safe for
// single-instance deployments.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clock.Clock
}

func NewMemoryBackend(clk clock.Clock) *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memoryEntry),
		clock:   clk,
	}
}

func (b *MemoryBackend) Acquire(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if e, ok := b.entries[key]; ok && now.Before(e.expiresAt) {
		return false, nil
	}
	b.entries[key] = memoryEntry{
		token:      token,
		acquiredAt: now,
		expiresAt:  now.Add(ttl),
	}
	return true, nil
}

func (b *MemoryBackend) Release(_ context.Context, key, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok || e.token != token {
		return false, nil
	}
	delete(b.entries, key)
	return true, nil
}

func (b *MemoryBackend) IsLocked(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return false, nil
	}
	if !b.clock.Now().Before(e.expiresAt) {
		delete(b.entries, key)
		return false, nil
	}
	return true, nil
}

func (b *MemoryBackend) ForceUnlock(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.entries[key]; !ok {
		return false, nil
	}
	delete(b.entries, key)
	return true, nil
}

func (b *MemoryBackend) ActiveLocks(_ context.Context) []Info {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	out := make([]Info, 0, len(b.entries))
	for key, e := range b.entries {
		if !now.Before(e.expiresAt) {
			delete(b.entries, key)
			continue
		}
		out = append(out, Info{
			Key:        key,
			Token:      e.token,
			AcquiredAt: e.acquiredAt,
			ExpiresAt:  e.expiresAt,
		})
	}
	return out
}
