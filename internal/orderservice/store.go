// Package orderservice owns the authoritative cart state. Orders are keyed
// by the caller's API key; item prices come from the product service at the
// moment the item is added.
package orderservice

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopmesh/shopmesh/internal/model"
)

// Store persists one open order per credential. Get returns the empty
// snapshot when no order exists; Save overwrites; Delete closes the order.
type Store interface {
	Get(ctx context.Context, credential string) (model.OrderSnapshot, error)
	Save(ctx context.Context, credential string, order model.OrderSnapshot) error
	Delete(ctx context.Context, credential string) error
}

// MemoryStore is the single-instance default, with the same copy-in copy-out
// behavior as the redis variant.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, credential string) (model.OrderSnapshot, error) {
	s.mu.RLock()
	raw, ok := s.orders[credential]
	s.mu.RUnlock()
	if !ok {
		return model.EmptyOrder(), nil
	}

	var order model.OrderSnapshot
	if err := json.Unmarshal(raw, &order); err != nil {
		return model.EmptyOrder(), err
	}
	if order.Items == nil {
		order.Items = map[string]int{}
	}
	return order, nil
}

func (s *MemoryStore) Save(_ context.Context, credential string, order model.OrderSnapshot) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.orders[credential] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, credential string) error {
	s.mu.Lock()
	delete(s.orders, credential)
	s.mu.Unlock()
	return nil
}
