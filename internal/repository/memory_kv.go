package repository

import (
	"context"
	"sync"
	"github.com/nikolayk812/gomarket-cart/internal/port"
)

type memoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemory() port.KeyValueStore {
	return &memoryKV{
		items: make(map[string]string),
	}
}

func (m *memoryKV) GetItem(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	return value, ok, nil
}

func (m *memoryKV) SetItem(_ context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *memoryKV) RemoveItem(_ context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}
