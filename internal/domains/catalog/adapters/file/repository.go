// Package file persists the product catalog as a JSON array blob on disk.
package file

import (
	"context"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
	"github.com/mercadito/shop-api/internal/domains/catalog/ports"
	"github.com/mercadito/shop-api/internal/platform/jsonstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the file-backed catalog adapter. Every call loads the
// collection fresh; mutations run as locked read-modify-write cycles.
type Repository struct {
	col *jsonstore.Collection[domain.Product]
}

// NewRepository binds the repository to its collection file. A missing
// products file is a storage error, not an empty catalog.
func NewRepository(path string) *Repository {
	return &Repository{col: jsonstore.Open[domain.Product](path)}
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	records, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Product, 0, len(records))
	for i := range records {
		list = append(list, records[i].Clone())
	}
	return list, nil
}

func (r *Repository) GetByUUID(ctx context.Context, uuid string) (*domain.Product, error) {
	records, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].UUID == uuid {
			return records[i].Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	saved := product.Clone()
	err := r.col.Update(ctx, func(records []domain.Product) ([]domain.Product, error) {
		for i := range records {
			if records[i].UUID == saved.UUID {
				return nil, ports.ErrDuplicateUUID
			}
		}
		return append(records, *saved), nil
	})
	if err != nil {
		return nil, err
	}
	return saved.Clone(), nil
}

func (r *Repository) Replace(ctx context.Context, uuid string, product *domain.Product) (*domain.Product, error) {
	saved := product.Clone()
	err := r.col.Update(ctx, func(records []domain.Product) ([]domain.Product, error) {
		for i := range records {
			if records[i].UUID == uuid {
				records[i] = *saved
				return records, nil
			}
		}
		return nil, ports.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return saved.Clone(), nil
}

func (r *Repository) Remove(ctx context.Context, uuid string) (*domain.Product, error) {
	var removed *domain.Product
	err := r.col.Update(ctx, func(records []domain.Product) ([]domain.Product, error) {
		for i := range records {
			if records[i].UUID == uuid {
				removed = records[i].Clone()
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, ports.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
