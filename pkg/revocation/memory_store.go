package revocation

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process local Store. Records vanish on restart and are not
// shared between instances.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired records are swept.
// Set to 0 to disable the sweeper; expired records are still hidden on read.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) { ms.cleanupInterval = interval }
}

// WithMemoryClock overrides time.Now.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store. Call Close to stop the sweeper.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		records:         make(map[string]memoryRecord),
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
	return ms
}

// SetWithTTL stores value under key until ttl elapses.
func (ms *MemoryStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records[key] = memoryRecord{value: value, expiresAt: ms.now().Add(ttl)}
	return nil
}

// Get returns the value of key. Expired records read as absent.
func (ms *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, unavailable(err)
	}

	ms.mu.RLock()
	rec, ok := ms.records[key]
	ms.mu.RUnlock()

	if !ok || !ms.now().Before(rec.expiresAt) {
		return "", false, nil
	}
	return rec.value, true, nil
}

// Len returns the number of stored records, including expired ones not yet swept.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.records)
}

// DeleteExpired removes expired records and returns how many were removed.
func (ms *MemoryStore) DeleteExpired() int {
	now := ms.now()

	ms.mu.Lock()
	defer ms.mu.Unlock()

	removed := 0
	for key, rec := range ms.records {
		if !now.Before(rec.expiresAt) {
			delete(ms.records, key)
			removed++
		}
	}
	return removed
}

// Close stops the background sweeper. It is safe to call more than once.
func (ms *MemoryStore) Close() error {
	ms.closeOnce.Do(func() { close(ms.stopCleanup) })
	return nil
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.DeleteExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}
