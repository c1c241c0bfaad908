package cache

import "sync"

// MemoryStore is an unbounded in-memory Store.
type MemoryStore[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewMemoryStore creates an empty store.
func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves a value. Returns (zero, false) on miss.
func (s *MemoryStore[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

// Set stores a value.
func (s *MemoryStore[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Len returns the number of entries.
func (s *MemoryStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store
var _ Store[string, []byte] = (*MemoryStore[string, []byte])(nil)
