package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
	"github.com/mercadito/shop-api/internal/domains/catalog/ports"
	"github.com/mercadito/shop-api/internal/shared/authz"
)

// Service orchestrates the product catalog use cases.
type Service struct {
	repo       ports.Repository
	authorizer ports.Authorizer
	newUUID    func() string
}

// Option configures the service.
type Option func(*Service)

// WithUUIDGenerator overrides the uuid source for deterministic testing.
func WithUUIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newUUID = gen
		}
	}
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository, authorizer ports.Authorizer, opts ...Option) *Service {
	s := &Service{repo: repo, authorizer: authorizer, newUUID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// List returns the catalog with role-based stock redaction, then applies the
// title and category filters. Redaction happens before filtering, matching
// the public listing behavior.
func (s *Service) List(ctx context.Context, filter ports.ListFilter, role string) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	admin := s.isAdmin(role)

	result := make([]*domain.Product, 0, len(products))
	for _, product := range products {
		view := product
		if !admin {
			view = product.Redacted()
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(view.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(view.Category, filter.Category) {
			continue
		}
		result = append(result, view)
	}
	return result, nil
}

// GetByUUID loads a single product. No role gate; the stored record is
// returned as is.
func (s *Service) GetByUUID(ctx context.Context, uuid string) (*domain.Product, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

// Create appends a new product. The uuid is generated when absent; title and
// pricePerUnit are required; a taken uuid is a conflict and leaves storage
// untouched.
func (s *Service) Create(ctx context.Context, product *domain.Product, role string) (*domain.Product, error) {
	if !s.isAdmin(role) {
		return nil, fmt.Errorf("%w: only administrators can create products", ErrForbidden)
	}
	candidate := product.Clone()
	if candidate.UUID == "" {
		candidate.UUID = s.newUUID()
	}
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Insert(ctx, candidate)
}

// Update shallow-merges the partial payload over the stored record. The
// allowed key set is exactly the keys the current record carries, so a key
// cannot be added to a product here, only existing keys changed.
func (s *Service) Update(ctx context.Context, uuid string, partial map[string]any, role string) (*domain.Product, error) {
	if !s.isAdmin(role) {
		return nil, fmt.Errorf("%w: only administrators can update products", ErrForbidden)
	}
	current, err := s.repo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if invalid := current.DisallowedKeys(partial); len(invalid) > 0 {
		return nil, &DisallowedKeysError{Keys: invalid}
	}
	updated := current.Clone()
	updated.Merge(partial)
	// address the record by its pre-merge uuid; the partial may rename it
	return s.repo.Replace(ctx, uuid, updated)
}

// Delete removes the product and returns the removed record.
func (s *Service) Delete(ctx context.Context, uuid string, role string) (*domain.Product, error) {
	if !s.isAdmin(role) {
		return nil, fmt.Errorf("%w: only administrators can delete products", ErrForbidden)
	}
	return s.repo.Remove(ctx, uuid)
}

// isAdmin asks the policy whether the role carries catalog write privilege,
// which is also what unlocks the unredacted listing.
func (s *Service) isAdmin(role string) bool {
	return s.authorizer.Allow(authz.SubjectFromRole(role), authz.ObjectProducts, authz.ActionWrite)
}
