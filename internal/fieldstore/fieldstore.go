// Package fieldstore models the host runtime's per-block field persistence:
// every stored value is keyed by (usage_id, field name) and holds JSON.
package fieldstore

import (
	"context"
	"sync"
)

type Store interface {
	// Get returns the stored JSON value for the field, and whether it was set.
	Get(ctx context.Context, usageID, field string) (string, bool, error)
	Set(ctx context.Context, usageID, field, value string) error
}

type memoryStore struct {
	mu     sync.RWMutex
	fields map[string]map[string]string // usage_id -> field -> value
}

func NewInMemoryStore() Store {
	return &memoryStore{fields: map[string]map[string]string{}}
}

func (m *memoryStore) Get(ctx context.Context, usageID, field string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.fields[usageID][field]
	return v, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, usageID, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fields[usageID] == nil {
		m.fields[usageID] = map[string]string{}
	}
	m.fields[usageID][field] = value
	return nil
}
