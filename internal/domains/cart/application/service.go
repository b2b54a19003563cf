package application

import (
	"context"
	"fmt"

	"github.com/mercadito/shop-api/internal/domains/cart/domain"
	"github.com/mercadito/shop-api/internal/domains/cart/ports"
	"github.com/mercadito/shop-api/internal/shared/authz"
)

// Service orchestrates the single-owner cart use cases.
type Service struct {
	repo       ports.Repository
	authorizer ports.Authorizer
	owner      string
}

// NewService wires the cart service. The owner name is only used for the
// human-readable access-denied messages; the decision itself belongs to the
// authorizer.
func NewService(repo ports.Repository, authorizer ports.Authorizer, owner string) *Service {
	return &Service{repo: repo, authorizer: authorizer, owner: owner}
}

var _ ports.Service = (*Service)(nil)

// List returns the full stored cart for its owner.
func (s *Service) List(ctx context.Context, user string) ([]domain.Item, error) {
	if !s.authorizer.Allow(authz.SubjectFromUser(user), authz.ObjectCart, authz.ActionRead) {
		return nil, fmt.Errorf("%w: only user %q can access the cart", ErrForbidden, s.owner)
	}
	return s.repo.List(ctx)
}

// Add appends the item verbatim. No validation, no dedup.
func (s *Service) Add(ctx context.Context, item domain.Item, user string) (domain.Item, error) {
	if !s.authorizer.Allow(authz.SubjectFromUser(user), authz.ObjectCart, authz.ActionWrite) {
		return domain.Item{}, fmt.Errorf("%w: only user %q can add items to the cart", ErrForbidden, s.owner)
	}
	return s.repo.Append(ctx, item)
}

// Remove deletes the first item with the uuid and returns it. No user gate.
func (s *Service) Remove(ctx context.Context, uuid string) (domain.Item, error) {
	return s.repo.Remove(ctx, uuid)
}
