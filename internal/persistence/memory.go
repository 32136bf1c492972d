package persistence

import (
	"context"
	"fmt"
	"sync"
)

// DefaultMemoryQuota mirrors the usual browser local storage limit.
const DefaultMemoryQuota = 5 * 1024 * 1024

// MemoryStore keeps values in a map. A positive quota bounds the total size of keys and values.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	used  int
	quota int
}

// NewMemoryStore returns an empty store. quota <= 0 disables the limit.
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), quota: quota}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(key) + len(value)
	if prev, ok := m.data[key]; ok {
		used -= len(key) + len(prev)
	}
	if m.quota > 0 && used > m.quota {
		return fmt.Errorf("set %q: %w (%d of %d bytes)", key, ErrQuotaExceeded, used, m.quota)
	}

	m.data[key] = append([]byte(nil), value...)
	m.used = used
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.data[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Used returns the number of bytes currently held.
func (m *MemoryStore) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}
