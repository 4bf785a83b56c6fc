package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type memoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemory keeps snapshots in memory, serialized the same way the
// durable stores serialize them. Meant for tests and for running without
// any persistence configured.
func NewMemory() port.SnapshotRepository {
	return &memoryRepository{snapshots: make(map[string][]byte)}
}

func (r *memoryRepository) Load(_ context.Context, ownerID string) (domain.Cart, bool, error) {
	if ownerID == "" {
		return domain.Cart{}, false, fmt.Errorf("ownerID is empty")
	}

	r.mu.RLock()
	raw, ok := r.snapshots[ownerID]
	r.mu.RUnlock()

	if !ok {
		return domain.Cart{}, false, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, false, nil
	}

	return cart, true, nil
}

func (r *memoryRepository) Save(_ context.Context, ownerID string, cart domain.Cart) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	r.mu.Lock()
	r.snapshots[ownerID] = raw
	r.mu.Unlock()

	return nil
}
