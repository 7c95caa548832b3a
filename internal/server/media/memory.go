package media

import (
	"context"
	"sync"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]Object{}}
}

func (m *MemoryStore) Put(_ context.Context, key string, obj Object) error {
	data := make([]byte, len(obj.Data))
	copy(data, obj.Data)

	m.mu.Lock()
	m.objects[key] = Object{Data: data, ContentType: obj.ContentType}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	return &obj, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}
