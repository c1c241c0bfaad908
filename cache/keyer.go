package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
)

// KeyFunc derives a call key from an argument whose type is not comparable.
//
// Contract:
//   - Determinism: equal arguments must produce equal keys.
//   - Distinctness: arguments that must not share a result must produce
//     different keys.
type KeyFunc[A any] func(arg A) (string, error)

// JSONKey derives a key from the JSON encoding of arg.
// Format: memo:<hash>
// where hash is the hex SHA-256 of JSON(arg), all 64 characters.
//
// encoding/json writes map keys in sorted order, so maps with the same
// content produce the same key regardless of insertion order. Slice order is
// significant.
func JSONKey[A any](arg A) (string, error) {
	data, err := json.Marshal(arg)
	if err != nil {
		return "", fmt.Errorf("cache: failed to encode argument: %w", err)
	}

	hash := sha256.Sum256(data)
	return "memo:" + hex.EncodeToString(hash[:]), nil
}

// stringKey adapts a KeyFunc so its output is validated before use.
func stringKey[A any](key KeyFunc[A]) func(A) (string, error) {
	return func(arg A) (string, error) {
		k, err := key(arg)
		if err != nil {
			return "", err
		}
		if err := ValidateKey(k); err != nil {
			return "", err
		}
		return k, nil
	}
}

// identityKey uses a comparable argument as its own key.
func identityKey[A comparable](arg A) (A, error) {
	return arg, nil
}

// checkedKey is identityKey for types that hold interfaces. Hashing an
// interface with a slice, map or func inside panics, so those are rejected.
func checkedKey[A comparable](arg A) (A, error) {
	if !reflect.ValueOf(&arg).Elem().Comparable() {
		return arg, fmt.Errorf("%w: %T", ErrUnhashableKey, any(arg))
	}
	return arg, nil
}

// holdsInterface reports whether values of t may carry a dynamic type that
// is only known at run time.
func holdsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if holdsInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
