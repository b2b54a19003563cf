package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercadito/shop-api/internal/domains/cart/domain"
	cartports "github.com/mercadito/shop-api/internal/domains/cart/ports"
	apierrors "github.com/mercadito/shop-api/internal/shared/errors"
)

// CartAPI wires HTTP transport with the cart service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /cart
// List the cart (owner only)
func (api *CartAPI) ListCart(c *gin.Context) {
	items, err := api.service.List(c.Request.Context(), c.GetHeader(HeaderUser))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Post /cart
// Append an item verbatim (owner only)
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		apierrors.RespondError(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	added, err := api.service.Add(c.Request.Context(), item, c.GetHeader(HeaderUser))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// Delete /cart/:id
// Remove the first item with the uuid; deliberately ungated
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	removed, err := api.service.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
