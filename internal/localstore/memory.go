package localstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store backed by a map. It is the ephemeral
// analogue of running without a persisted browser profile and the
// default substitute in tests.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// GetItem implements Store.
func (m *Memory) GetItem(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	if !ok {
		return "", ErrNoItem
	}
	return value, nil
}

// SetItem implements Store.
func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

// RemoveItem implements Store.
func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
