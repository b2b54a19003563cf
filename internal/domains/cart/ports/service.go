package ports

import (
	"context"

	"github.com/mercadito/shop-api/internal/domains/cart/domain"
)

// Service is the cart application port. User is the raw x-user header value.
// Remove deliberately takes no identity: cart deletion is ungated on this
// surface, and that asymmetry is part of the contract.
type Service interface {
	List(ctx context.Context, user string) ([]domain.Item, error)
	Add(ctx context.Context, item domain.Item, user string) (domain.Item, error)
	Remove(ctx context.Context, uuid string) (domain.Item, error)
}
