package cache

import (
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a derived string key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")

	// ErrUnhashableKey indicates an interface-typed argument whose dynamic
	// value cannot be used as a map key.
	ErrUnhashableKey = errors.New("cache: argument is not hashable")
)

// Store holds memoized results.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Get returns (zero, false) on miss and never errors.
//   - No eviction: a stored entry stays until the Store is dropped.
type Store[K comparable, V any] interface {
	// Get retrieves a stored result.
	Get(key K) (V, bool)

	// Set stores a result, replacing any previous one for key.
	Set(key K, value V)

	// Len reports the number of stored entries.
	Len() int
}

// ValidateKey checks if a derived string key is usable.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
