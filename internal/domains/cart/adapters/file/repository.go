// Package file persists the cart as a JSON array blob on disk.
package file

import (
	"context"

	"github.com/mercadito/shop-api/internal/domains/cart/domain"
	"github.com/mercadito/shop-api/internal/domains/cart/ports"
	"github.com/mercadito/shop-api/internal/platform/jsonstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the file-backed cart adapter. A missing cart file reads as
// an empty cart.
type Repository struct {
	col *jsonstore.Collection[domain.Item]
}

func NewRepository(path string) *Repository {
	return &Repository{col: jsonstore.Open(path, jsonstore.WithEmptyOnMissing[domain.Item]())}
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	items, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]domain.Item, 0, len(items))
	for _, item := range items {
		list = append(list, item.Clone())
	}
	return list, nil
}

func (r *Repository) Append(ctx context.Context, item domain.Item) (domain.Item, error) {
	saved := item.Clone()
	err := r.col.Update(ctx, func(items []domain.Item) ([]domain.Item, error) {
		return append(items, saved), nil
	})
	if err != nil {
		return domain.Item{}, err
	}
	return saved.Clone(), nil
}

func (r *Repository) Remove(ctx context.Context, uuid string) (domain.Item, error) {
	var removed domain.Item
	err := r.col.Update(ctx, func(items []domain.Item) ([]domain.Item, error) {
		for i := range items {
			if items[i].UUID() == uuid {
				removed = items[i].Clone()
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ports.ErrNotFound
	})
	if err != nil {
		return domain.Item{}, err
	}
	return removed, nil
}
