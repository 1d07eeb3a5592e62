package dedupe

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps seen keys in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]time.Time // key -> expiry
	ttl  time.Duration
	now  func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired keys are purged.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

func NewMemoryStore(ttl time.Duration, opts ...MemoryStoreOption) (*MemoryStore, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	ms := &MemoryStore{
		seen:            make(map[string]time.Time),
		ttl:             ttl,
		now:             time.Now,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms, nil
}

func (ms *MemoryStore) Acquire(_ context.Context, key string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if exp, ok := ms.seen[key]; ok && now.Before(exp) {
		return false, nil
	}
	ms.seen[key] = now.Add(ms.ttl)
	return true, nil
}

func (ms *MemoryStore) Release(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.seen, key)
	return nil
}

// Len returns the number of tracked keys, expired ones included until purged.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.seen)
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, exp := range ms.seen {
		if !now.Before(exp) {
			delete(ms.seen, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	select {
	case <-ms.stopCleanup:
	default:
		close(ms.stopCleanup)
	}
}
