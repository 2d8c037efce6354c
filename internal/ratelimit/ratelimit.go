// Package ratelimit provides a fixed-window rate limiter over an injected
// store with explicit TTL semantics. The default store is an in-memory map;
// a multi-instance deployment would swap in a shared store behind the same
// interface.
package ratelimit

import (
	"sync"
	"time"
)

// Record is one counting window for a key.
type Record struct {
	Count   int
	ResetAt time.Time
}

// Store persists rate limit windows. Entries past ResetAt are expired and
// may be dropped at any time.
type Store interface {
	Get(key string) (Record, bool)
	Put(key string, record Record)
	DeleteExpired(now time.Time)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	return record, ok
}

func (s *MemoryStore) Put(key string, record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = record
}

// DeleteExpired drops windows whose reset time has passed.
func (s *MemoryStore) DeleteExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, record := range s.records {
		if now.After(record.ResetAt) {
			delete(s.records, key)
		}
	}
}

// Info describes the remaining budget for a key.
type Info struct {
	Remaining int
	ResetAt   time.Time
	Limited   bool
}

// Limiter counts events per key within a fixed window.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewLimiter creates a limiter allowing limit events per window. A nil
// clock falls back to time.Now.
func NewLimiter(store Store, limit int, window time.Duration, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{store: store, limit: limit, window: window, now: now}
}

// Allow consumes one event for the key. It returns false when the window's
// budget is exhausted.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	record, ok := l.store.Get(key)
	if !ok || now.After(record.ResetAt) {
		l.store.Put(key, Record{Count: 1, ResetAt: now.Add(l.window)})
		return true
	}

	if record.Count >= l.limit {
		return false
	}

	record.Count++
	l.store.Put(key, record)
	return true
}

// Info reports the remaining budget without consuming an event.
func (l *Limiter) Info(key string) Info {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	record, ok := l.store.Get(key)
	if !ok || now.After(record.ResetAt) {
		return Info{Remaining: l.limit, ResetAt: now.Add(l.window)}
	}

	remaining := l.limit - record.Count
	if remaining < 0 {
		remaining = 0
	}
	return Info{
		Remaining: remaining,
		ResetAt:   record.ResetAt,
		Limited:   record.Count >= l.limit,
	}
}

// Sweep drops expired windows from the store. Meant to run periodically so
// the store stays bounded.
func (l *Limiter) Sweep() {
	l.store.DeleteExpired(l.now())
}
