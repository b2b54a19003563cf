// Package memory provides an in-memory catalog adapter for development and
// tests.
package memory

import (
	"context"
	"sync"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
	"github.com/mercadito/shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps the catalog as an ordered in-memory sequence.
type Repository struct {
	mu       sync.RWMutex
	products []*domain.Product
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p.Clone())
	}
	return list, nil
}

func (r *Repository) GetByUUID(_ context.Context, uuid string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.UUID == uuid {
			return p.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Insert(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.UUID == product.UUID {
			return nil, ports.ErrDuplicateUUID
		}
	}
	r.products = append(r.products, product.Clone())
	return product.Clone(), nil
}

func (r *Repository) Replace(_ context.Context, uuid string, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.UUID == uuid {
			r.products[i] = product.Clone()
			return product.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Remove(_ context.Context, uuid string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.UUID == uuid {
			removed := p.Clone()
			r.products = append(r.products[:i], r.products[i+1:]...)
			return removed, nil
		}
	}
	return nil, ports.ErrNotFound
}
