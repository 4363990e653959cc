package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu sync.Mutex
	s  models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(context.Context) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemoryStore) Set(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = models.Session{}
	return nil
}
