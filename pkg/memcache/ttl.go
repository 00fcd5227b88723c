package mem

import (
	"sync"
	"time"
)

// Store is a keyed cache whose entries expire after a per-entry TTL.
type Store[K comparable, V any] interface {
	Set(key K, value V, ttl time.Duration)

	// Get returns the value for key if present and not expired.
	Get(key K) (V, bool)

	// Consume is Get followed by Delete.
	Consume(key K) (V, bool)

	Delete(key K)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type TTL[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
	now  func() time.Time
}

func NewTTL[K comparable, V any]() *TTL[K, V] {
	return &TTL[K, V]{
		data: make(map[K]entry[V]),
		now:  time.Now,
	}
}

func (s *TTL[K, V]) Set(key K, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *TTL[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// re-check, a Set may have raced in
		if cur, ok := s.data[key]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *TTL[K, V]) Consume(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.data[key]
	if !ok {
		return zero, false
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *TTL[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Purge drops expired entries and returns how many were removed.
func (s *TTL[K, V]) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			n++
		}
	}
	return n
}

func (s *TTL[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
