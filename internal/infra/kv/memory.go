package kv

import (
	"context"
	"sync"
	"time"

	"pearlify/internal/repository"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps values in process. With a TTL it behaves like a browsing
// session store; with a quota it rejects writes like a full local storage would.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	quota   int
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithTTL expires entries ttl after their last write.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.ttl = ttl }
}

// WithQuota caps the total bytes of keys plus values.
func WithQuota(bytes int) MemoryOption {
	return func(s *MemoryStore) { s.quota = bytes }
}

// WithClock replaces time.Now, for expiry tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	now := s.now()
	if !e.expired(now) {
		return e.value, true, nil
	}

	// a Set may have refreshed the key since the read lock was released
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if cur.expired(now) {
		delete(s.entries, key)
		return "", false, nil
	}
	return cur.value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := 0
		for k, e := range s.entries {
			if k == key {
				continue
			}
			used += len(k) + len(e.value)
		}
		if used+len(key)+len(value) > s.quota {
			return repository.ErrQuotaExceeded
		}
	}

	e := memoryEntry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
