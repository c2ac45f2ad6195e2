// Package cache provides the injected TTL cache capability: a Redis-backed
// store when configured, with a thread-safe in-memory fallback. Entries are
// timestamped at Set; freshness is judged against the TTL supplied at Get,
// so call sites can apply different windows to the same key space.
package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value when present and younger than ttl. A
// non-positive ttl accepts any cached value. Expired entries are evicted.
func (m *Memory) Get(_ context.Context, key string, ttl time.Duration) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if ttl > 0 && time.Since(entry.storedAt) > ttl {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, storedAt: time.Now()}
	m.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
