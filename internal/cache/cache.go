// Package cache provides a small memoization wrapper for single-input
// analysis functions. Entries expire after a TTL and the cache evicts the
// single oldest entry once it grows past its size bound.
//
// This is a per-process result cache with a bounded lifetime, not to be
// confused with the model registry, whose entries live for the whole
// process and are never evicted.
package cache

import (
	"sync"
	"time"
)

const (
	DefaultTTL     = time.Hour
	DefaultMaxSize = 1000
)

type entry[V any] struct {
	value V
	at    time.Time
}

// Memoize wraps fn with TTL-bounded memoization. A live entry is returned
// without invoking fn; errors are never cached. When the cache holds
// maxSize entries, the entry with the oldest timestamp is evicted before a
// new result is stored.
func Memoize[K comparable, V any](fn func(K) (V, error), ttl time.Duration, maxSize int) func(K) (V, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	var (
		mu      sync.Mutex
		entries = make(map[K]entry[V])
	)

	return func(key K) (V, error) {
		mu.Lock()
		if e, ok := entries[key]; ok && time.Since(e.at) < ttl {
			mu.Unlock()
			return e.value, nil
		}
		mu.Unlock()

		value, err := fn(key)
		if err != nil {
			var zero V
			return zero, err
		}

		mu.Lock()
		if len(entries) >= maxSize {
			evictOldest(entries)
		}
		entries[key] = entry[V]{value: value, at: time.Now()}
		mu.Unlock()

		return value, nil
	}
}

func evictOldest[K comparable, V any](entries map[K]entry[V]) {
	var (
		oldestKey K
		oldestAt  time.Time
		found     bool
	)
	for k, e := range entries {
		if !found || e.at.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.at, true
		}
	}
	if found {
		delete(entries, oldestKey)
	}
}
