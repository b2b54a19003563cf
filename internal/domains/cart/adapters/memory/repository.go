// Package memory provides an in-memory cart adapter for development and
// tests.
package memory

import (
	"context"
	"sync"

	"github.com/mercadito/shop-api/internal/domains/cart/domain"
	"github.com/mercadito/shop-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps the cart as an ordered in-memory sequence.
type Repository struct {
	mu    sync.RWMutex
	items []domain.Item
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) List(_ context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		list = append(list, item.Clone())
	}
	return list, nil
}

func (r *Repository) Append(_ context.Context, item domain.Item) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item.Clone())
	return item.Clone(), nil
}

func (r *Repository) Remove(_ context.Context, uuid string) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.UUID() == uuid {
			removed := item.Clone()
			r.items = append(r.items[:i], r.items[i+1:]...)
			return removed, nil
		}
	}
	return domain.Item{}, ports.ErrNotFound
}
