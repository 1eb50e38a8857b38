package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stockflow/backend/internal/domain/shared"
)

const sweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed-event keys in a map with
// per-key expiry. Good for a single instance and for tests; use the
// Redis store when several instances share dedup state.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

// NewInMemoryIdempotencyStore starts a sweeper goroutine that evicts
// expired keys; call Close to stop it.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		deadlines: make(map[string]time.Time),
		done:      make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop()
	return s
}

// MarkProcessed records the key for ttl. It reports false when a live
// entry already exists; an expired entry is claimed again.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, ok := s.deadlines[key]; ok && now.Before(deadline) {
		return false, nil
	}
	s.deadlines[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether the key has a live entry.
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deadline, ok := s.deadlines[key]
	return ok && time.Now().Before(deadline), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
	return nil
}

// Size reports the number of entries, expired or not. Used by tests.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deadlines)
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, deadline := range s.deadlines {
				if now.After(deadline) {
					delete(s.deadlines, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
