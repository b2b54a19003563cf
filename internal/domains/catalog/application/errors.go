package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
)

var (
	// ErrForbidden signals the caller's role may not perform the operation.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

// DisallowedKeysError reports the partial-update keys the current record does
// not carry. It unwraps to ErrInvalidInput so callers can treat it as any
// other invalid request, while transports can name the offending keys.
type DisallowedKeysError struct {
	Keys []string
}

func (e *DisallowedKeysError) Error() string {
	return fmt.Sprintf("%v: invalid parameters: %s", ErrInvalidInput, strings.Join(e.Keys, ", "))
}

func (e *DisallowedKeysError) Unwrap() error { return ErrInvalidInput }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingTitle) || errors.Is(err, domain.ErrMissingPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
