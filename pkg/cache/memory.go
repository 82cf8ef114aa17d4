package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Cache used in tests. It records every deleted key
// so invalidation fan-out can be asserted on.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	deleted []string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", ErrMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return "", ErrMiss
	}
	return entry.value, nil
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

// DeletedKeys returns every key ever passed to Delete, in order.
func (m *Memory) DeletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.deleted))
	copy(out, m.deleted)
	return out
}

// Contains reports whether the key currently holds a live entry.
func (m *Memory) Contains(key string) bool {
	_, err := m.Get(context.Background(), key)
	return err == nil
}
