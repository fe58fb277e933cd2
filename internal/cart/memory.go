package cart

import (
	"context"
	"encoding/json"
	"sync"

	"upaheart-backend/internal/models"
)

// MemorySnapshots is an in-process Snapshotter used when no Redis is
// configured, and in tests. Snapshots go through a JSON round trip so staged
// files are dropped exactly as they would be by a real backend.
type MemorySnapshots struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{snapshots: make(map[string][]byte)}
}

func (m *MemorySnapshots) Load(_ context.Context, cartID string) (*models.Cart, error) {
	m.mu.RLock()
	data, ok := m.snapshots[cartID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (m *MemorySnapshots) Save(_ context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.snapshots[cart.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemorySnapshots) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	delete(m.snapshots, cartID)
	m.mu.Unlock()
	return nil
}
