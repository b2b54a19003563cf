package ports

import (
	"context"
	"errors"

	"github.com/mercadito/shop-api/internal/domains/cart/domain"
)

var ErrNotFound = errors.New("cart item not found")

// Repository persists the cart collection. A cart that was never written is
// an empty sequence, not an error.
type Repository interface {
	List(ctx context.Context) ([]domain.Item, error)
	// Append pushes the item onto the cart with no uniqueness check.
	Append(ctx context.Context, item domain.Item) (domain.Item, error)
	// Remove deletes the first item matching the uuid and returns it.
	Remove(ctx context.Context, uuid string) (domain.Item, error)
}

// Authorizer answers whether a subject may perform an action on an object.
type Authorizer interface {
	Allow(subject, object, action string) bool
}
