package reputation

import (
	"context"
	"sync"
)

var _ Store = (*MemStore)(nil)

type MemStore struct {
	mu      sync.RWMutex
	profile *Profile
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Load(ctx context.Context) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil {
		return nil, ErrNotFound
	}

	return m.profile.clone(), nil
}

func (m *MemStore) Save(ctx context.Context, p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profile = p.clone()

	return nil
}

func (m *MemStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profile = nil

	return nil
}

func (m *MemStore) Close() error {
	return nil
}
