package kv

import (
	"context"
	"sync"
)

type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemory() *Memory {
	return &Memory{slots: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[namespaced(key)]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[namespaced(key)] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, namespaced(key))
	return nil
}
