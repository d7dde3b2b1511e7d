package cache

import (
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is the in-process L1. Values are stored as JSON so hits
// behave identically whether they come from L1 or from Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	hits    int64
	misses  int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()

	return nil
}

func (m *MemoryCache) Get(key string, dest interface{}) error {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	if !found || entry.expired() {
		m.mu.Lock()
		if found {
			delete(m.entries, key)
		}
		m.misses++
		m.mu.Unlock()
		return ErrCacheMiss
	}

	m.mu.Lock()
	m.hits++
	m.mu.Unlock()

	return json.Unmarshal(entry.data, dest)
}

func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) DeletePattern(pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		if matched, _ := path.Match(pattern, key); matched {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *MemoryCache) Exists(key string) (bool, error) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	return found && !entry.expired(), nil
}

func (m *MemoryCache) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries": len(m.entries),
		"hits":    m.hits,
		"misses":  m.misses,
	}
}

func (m *MemoryCache) Health() error {
	return nil
}

func (m *MemoryCache) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (e memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}
