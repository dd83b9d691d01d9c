package state

import (
	"sync"
	"time"
)

// Slot holds the latest snapshot published by one poller. Readers get a
// copy; the lock covers only the assignment, never the producer's I/O.
type Slot[T any] struct {
	mu        sync.RWMutex
	value     T
	present   bool
	updatedAt time.Time
}

// Store replaces the slot contents wholesale.
func (s *Slot[T]) Store(v T) {
	now := time.Now()
	s.mu.Lock()
	s.value = v
	s.present = true
	s.updatedAt = now
	s.mu.Unlock()
}

// Clear marks the slot as holding no snapshot.
func (s *Slot[T]) Clear() {
	var zero T
	now := time.Now()
	s.mu.Lock()
	s.value = zero
	s.present = false
	s.updatedAt = now
	s.mu.Unlock()
}

// Load returns the current snapshot and whether one is present.
func (s *Slot[T]) Load() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.present
}

// UpdatedAt returns when the slot was last written, or the zero time.
func (s *Slot[T]) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
