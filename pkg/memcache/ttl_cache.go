package memcache

import (
	"sync"
	"time"
)

type Cache[V any] interface {
	Set(key string, value V)

	// Get returns the value for key if it has not expired.
	Get(key string) (V, bool)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a mutex guarded map whose entries expire after a fixed ttl.
// Expired entries are dropped lazily on Get and on Set once the map grows
// past sweepAt.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	data    map[string]entry[V]
	ttl     time.Duration
	sweepAt int
	now     func() time.Time
}

func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		data:    make(map[string]entry[V]),
		ttl:     ttl,
		sweepAt: 256,
		now:     time.Now,
	}
}

func (s *TTLCache[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.data) >= s.sweepAt {
		for k, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, k)
			}
		}
		if len(s.data) >= s.sweepAt {
			s.sweepAt *= 2
		}
	}
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: now.Add(s.ttl),
	}
}

func (s *TTLCache[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *TTLCache[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
