// Package debounce provides DebounceStore implementations: a process-lifetime
// in-memory map and a Redis-backed store for multi-instance workers.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory DebounceStore. Entries live for the process
// lifetime and are never cleaned up — staleness is harmless and the map is
// bounded by the number of distinct items ever attempted.
type MemoryStore struct {
	cooldown time.Duration

	mu       sync.RWMutex
	attempts map[uuid.UUID]time.Time
}

// NewMemoryStore returns a MemoryStore with the given cooldown window.
func NewMemoryStore(cooldown time.Duration) *MemoryStore {
	return &MemoryStore{
		cooldown: cooldown,
		attempts: make(map[uuid.UUID]time.Time),
	}
}

// ShouldSkip reports whether a prior attempt for itemID exists within the
// cooldown window ending at now.
func (s *MemoryStore) ShouldSkip(_ context.Context, itemID uuid.UUID, now time.Time) (bool, error) {
	s.mu.RLock()
	last, ok := s.attempts[itemID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return now.Sub(last) < s.cooldown, nil
}

// RecordAttempt unconditionally overwrites the stored timestamp for itemID.
func (s *MemoryStore) RecordAttempt(_ context.Context, itemID uuid.UUID, now time.Time) error {
	s.mu.Lock()
	s.attempts[itemID] = now
	s.mu.Unlock()
	return nil
}

// Reset clears all recorded attempts. Test hook.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	s.attempts = make(map[uuid.UUID]time.Time)
	s.mu.Unlock()
}
