package backend

import (
	"context"
	"sync"
)

// Memory is an in-process key-value store implementing [Backend].
// Use it for single-process applications and tests. Values are opaque to the
// invalidation engine; Set and Get exist so a host cache and the engine can
// share one store in simple setups.
type Memory struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]any)}
}

// Set stores a value.
func (m *Memory) Set(_ context.Context, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

// Get retrieves a value.
func (m *Memory) Get(_ context.Context, key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether the key exists.
func (m *Memory) Has(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Delete removes a key. Missing keys are a no-op.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// DeleteMulti removes all given keys in one pass.
func (m *Memory) DeleteMulti(_ context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

var _ Backend = (*Memory)(nil)
