package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
	catalogports "github.com/mercadito/shop-api/internal/domains/catalog/ports"
	apierrors "github.com/mercadito/shop-api/internal/shared/errors"
)

// ProductsAPI wires HTTP transport with the catalog service.
type ProductsAPI struct {
	service catalogports.Service
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Get /products
// List the catalog, role-filtered, with optional title/category query filters
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	filter := catalogports.ListFilter{
		Title:    c.Query("title"),
		Category: c.Query("category"),
	}
	products, err := api.service.List(c.Request.Context(), filter, c.GetHeader(HeaderRole))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get /products/:id
// Find a product by uuid
func (api *ProductsAPI) GetProductById(c *gin.Context) {
	product, err := api.service.GetByUUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Post /products
// Create a product (administrators only)
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		apierrors.RespondError(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	created, err := api.service.Create(c.Request.Context(), &product, c.GetHeader(HeaderRole))
	if err != nil {
		respondCreateProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Put /products/:id
// Partially update a product; only keys the record already carries
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		apierrors.RespondError(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.Update(c.Request.Context(), c.Param("id"), partial, c.GetHeader(HeaderRole))
	if err != nil {
		respondUpdateProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete /products/:id
// Delete a product and return the removed record (administrators only)
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	deleted, err := api.service.Delete(c.Request.Context(), c.Param("id"), c.GetHeader(HeaderRole))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// Create and update answer every unexpected failure with a generic 400
// rather than a 500; that shape is part of the wire contract.
func respondCreateProductError(c *gin.Context, err error) {
	problem := problemFromError(err)
	if problem.Status >= http.StatusInternalServerError {
		problem = apierrors.ErrBadRequest.WithDetail("failed to create the product")
	}
	apierrors.Respond(c, problem)
}

func respondUpdateProductError(c *gin.Context, err error) {
	problem := problemFromError(err)
	if problem.Status >= http.StatusInternalServerError {
		problem = apierrors.ErrBadRequest.WithDetail("failed to update the product")
	}
	apierrors.Respond(c, problem)
}
