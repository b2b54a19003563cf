package shopserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/mercadito/shop-api/internal/domains/cart/application"
	cartports "github.com/mercadito/shop-api/internal/domains/cart/ports"
	catalogapp "github.com/mercadito/shop-api/internal/domains/catalog/application"
	catalogports "github.com/mercadito/shop-api/internal/domains/catalog/ports"
	"github.com/mercadito/shop-api/internal/platform/jsonstore"
	apierrors "github.com/mercadito/shop-api/internal/shared/errors"
)

// respondServiceError maps application and storage failures to RFC 7807
// responses with the status codes clients depend on.
func respondServiceError(c *gin.Context, err error) {
	apierrors.Respond(c, problemFromError(err))
}

func problemFromError(err error) apierrors.ProblemDetail {
	var disallowed *catalogapp.DisallowedKeysError
	switch {
	case errors.Is(err, catalogapp.ErrForbidden), errors.Is(err, cartapp.ErrForbidden):
		return apierrors.NewAccessDeniedProblem(err.Error())
	case errors.Is(err, catalogports.ErrNotFound), errors.Is(err, cartports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error())
	case errors.As(err, &disallowed):
		return apierrors.NewDisallowedKeysProblem(disallowed.Keys)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error())
	case errors.Is(err, catalogports.ErrDuplicateUUID):
		// duplicates answer 400 on this surface, not 409
		return apierrors.ErrBadRequest.WithDetail(err.Error())
	case errors.Is(err, jsonstore.ErrStorage):
		return apierrors.ErrStorage.WithDetail(err.Error())
	default:
		return apierrors.ErrInternal.WithDetail(err.Error())
	}
}
