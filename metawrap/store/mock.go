package store

import (
	"bytes"
	"context"
	"sort"
	"sync"

	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
)

// MockStore is a simple in-memory Store implementation for tests.
type MockStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ Store = (*MockStore)(nil)

// NewMockStore constructs an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{objects: make(map[string][]byte)}
}

// AddObject stores object content under name.
func (m *MockStore) AddObject(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = append([]byte(nil), data...)
}

// List returns descriptors for all stored objects, sorted by name.
func (m *MockStore) List(ctx context.Context) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]ObjectInfo, 0, len(m.objects))
	for name, data := range m.objects {
		infos = append(infos, ObjectInfo{Name: name, Size: int64(len(data))})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Open returns a reader over the named object.
func (m *MockStore) Open(ctx context.Context, name string) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[name]
	if !ok {
		return nil, metaerrors.ErrObjectNotFound.WithDetail("name", name)
	}
	return &mockObject{Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

type mockObject struct {
	*bytes.Reader
	size int64
}

func (o *mockObject) Close() error {
	return nil
}

func (o *mockObject) Size() int64 {
	return o.size
}
