package ports

import (
	"context"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
)

// ListFilter narrows a catalog listing. Title is a case-insensitive
// substring match, Category a case-insensitive exact match; both are ANDed.
type ListFilter struct {
	Title    string
	Category string
}

// Service is the catalog application port. Role is the raw x-auth header
// value; the service decides what it is allowed to see and do.
type Service interface {
	List(ctx context.Context, filter ListFilter, role string) ([]*domain.Product, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product, role string) (*domain.Product, error)
	Update(ctx context.Context, uuid string, partial map[string]any, role string) (*domain.Product, error)
	Delete(ctx context.Context, uuid string, role string) (*domain.Product, error)
}
