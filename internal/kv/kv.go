// Package kv provides the string-keyed blob storage the bookmark, history and
// preferences stores persist through.
package kv

import (
	"context"
	"sync"
)

// Store is a durable string-keyed blob store
type Store interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value stored under key
	Set(ctx context.Context, key, value string) error
}

// Memory is a process-local Store, used by tests and --storage=memory
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Store
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Store
func (m *Memory) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
