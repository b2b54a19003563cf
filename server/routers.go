// Package shopserver wires the HTTP transport for the shop API: a route
// table over gin handlers for the product catalog and the cart.
package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Trust is carried in plain headers; there are no auth tokens.
const (
	// HeaderRole carries the caller's role for catalog operations.
	HeaderRole = "x-auth"
	// HeaderUser carries the caller's identity for cart operations.
	HeaderUser = "x-user"
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the per-surface handler structs.
type ApiHandleFunctions struct {
	ProductsAPI ProductsAPI
	CartAPI     CartAPI
}

// NewRouter returns a new router with a default gin engine.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to the provided engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc is used when a route has no registered handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Index answers the health-style root probe with plain text.
func Index(c *gin.Context) {
	c.String(http.StatusOK, "mercadito e-commerce demo API")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "Index",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: Index,
		},
		{
			Name:        "ListProducts",
			Method:      http.MethodGet,
			Pattern:     "/products",
			HandlerFunc: handleFunctions.ProductsAPI.ListProducts,
		},
		{
			Name:        "GetProductById",
			Method:      http.MethodGet,
			Pattern:     "/products/:id",
			HandlerFunc: handleFunctions.ProductsAPI.GetProductById,
		},
		{
			Name:        "CreateProduct",
			Method:      http.MethodPost,
			Pattern:     "/products",
			HandlerFunc: handleFunctions.ProductsAPI.CreateProduct,
		},
		{
			Name:        "UpdateProduct",
			Method:      http.MethodPut,
			Pattern:     "/products/:id",
			HandlerFunc: handleFunctions.ProductsAPI.UpdateProduct,
		},
		{
			Name:        "DeleteProduct",
			Method:      http.MethodDelete,
			Pattern:     "/products/:id",
			HandlerFunc: handleFunctions.ProductsAPI.DeleteProduct,
		},
		{
			Name:        "ListCart",
			Method:      http.MethodGet,
			Pattern:     "/cart",
			HandlerFunc: handleFunctions.CartAPI.ListCart,
		},
		{
			Name:        "AddCartItem",
			Method:      http.MethodPost,
			Pattern:     "/cart",
			HandlerFunc: handleFunctions.CartAPI.AddCartItem,
		},
		{
			Name:        "RemoveCartItem",
			Method:      http.MethodDelete,
			Pattern:     "/cart/:id",
			HandlerFunc: handleFunctions.CartAPI.RemoveCartItem,
		},
	}
}
