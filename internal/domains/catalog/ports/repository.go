package ports

import (
	"context"
	"errors"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateUUID = errors.New("a product with the same uuid already exists")
)

// Repository persists the product collection. Implementations load the
// canonical sequence fresh on every call; there is no cross-request cache.
type Repository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.Product, error)
	// Insert appends the product, failing with ErrDuplicateUUID when the
	// uuid is already taken.
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Replace swaps the stored record addressed by uuid. The replacement may
	// carry a different uuid; a merge is allowed to rename the record.
	Replace(ctx context.Context, uuid string, product *domain.Product) (*domain.Product, error)
	// Remove deletes the first record with the uuid and returns it.
	Remove(ctx context.Context, uuid string) (*domain.Product, error)
}

// Authorizer answers whether a subject may perform an action on an object.
type Authorizer interface {
	Allow(subject, object, action string) bool
}
