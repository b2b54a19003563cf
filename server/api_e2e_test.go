package shopserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	cartfile "github.com/mercadito/shop-api/internal/domains/cart/adapters/file"
	cartapp "github.com/mercadito/shop-api/internal/domains/cart/application"
	catalogfile "github.com/mercadito/shop-api/internal/domains/catalog/adapters/file"
	catalogapp "github.com/mercadito/shop-api/internal/domains/catalog/application"
	"github.com/mercadito/shop-api/internal/shared/authz"
)

const seedProducts = `[
  {"uuid":"p1","title":"Fountain Pen","pricePerUnit":12.5,"category":"Office","stock":4},
  {"uuid":"p2","title":"Notebook","pricePerUnit":3,"category":"office","stock":9,"pages":120},
  {"uuid":"p3","title":"Mug","pricePerUnit":7,"category":"kitchen"}
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(productsPath, []byte(seedProducts), 0o644))

	return newTestServerWithPaths(t, productsPath, filepath.Join(dir, "cart.json"))
}

func newTestServerWithPaths(t *testing.T, productsPath, cartPath string) *httptest.Server {
	t.Helper()

	authorizer, err := authz.New("juan")
	require.NoError(t, err)

	catalogService := catalogapp.NewService(catalogfile.NewRepository(productsPath), authorizer)
	cartService := cartapp.NewService(cartfile.NewRepository(cartPath), authorizer, "juan")

	handlers := ApiHandleFunctions{
		ProductsAPI: NewProductsAPI(catalogService),
		CartAPI:     NewCartAPI(cartService),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, headers map[string]string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, payload
}

func asAdmin() map[string]string { return map[string]string{HeaderRole: "admin"} }

func TestIndex(t *testing.T) {
	server := newTestServer(t)

	res, body := doJSON(t, http.MethodGet, server.URL+"/", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "mercadito")
}

func TestProductLifecycle(t *testing.T) {
	server := newTestServer(t)

	// create as admin with a generated uuid
	res, body := doJSON(t, http.MethodPost, server.URL+"/products", asAdmin(),
		map[string]any{"title": "Pen", "pricePerUnit": 1.5})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	uuid, _ := created["uuid"].(string)
	require.NotEmpty(t, uuid)

	res, body = doJSON(t, http.MethodGet, server.URL+"/products/"+uuid, nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(body, &fetched))
	require.Equal(t, "Pen", fetched["title"])

	// delete as non-admin is refused
	res, _ = doJSON(t, http.MethodDelete, server.URL+"/products/"+uuid, nil, nil)
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	// delete as admin returns the removed record
	res, body = doJSON(t, http.MethodDelete, server.URL+"/products/"+uuid, asAdmin(), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var deleted map[string]any
	require.NoError(t, json.Unmarshal(body, &deleted))
	require.Equal(t, "Pen", deleted["title"])

	res, _ = doJSON(t, http.MethodGet, server.URL+"/products/"+uuid, nil, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestListProducts_RedactionAndFilters(t *testing.T) {
	server := newTestServer(t)

	res, body := doJSON(t, http.MethodGet, server.URL+"/products", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var public []map[string]any
	require.NoError(t, json.Unmarshal(body, &public))
	require.Len(t, public, 3)
	for _, p := range public {
		_, hasStock := p["stock"]
		require.False(t, hasStock, "stock must be redacted for non-admins")
	}

	res, body = doJSON(t, http.MethodGet, server.URL+"/products", asAdmin(), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var full []map[string]any
	require.NoError(t, json.Unmarshal(body, &full))
	require.Equal(t, float64(4), full[0]["stock"])

	res, body = doJSON(t, http.MethodGet, server.URL+"/products?title=note&category=OFFICE", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var filtered []map[string]any
	require.NoError(t, json.Unmarshal(body, &filtered))
	require.Len(t, filtered, 1)
	require.Equal(t, "p2", filtered[0]["uuid"])
}

func TestCreateProduct_Validation(t *testing.T) {
	server := newTestServer(t)

	res, _ := doJSON(t, http.MethodPost, server.URL+"/products", nil,
		map[string]any{"title": "Pen", "pricePerUnit": 1.5})
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	// the role value is matched verbatim
	res, _ = doJSON(t, http.MethodPost, server.URL+"/products", map[string]string{HeaderRole: "ADMIN"},
		map[string]any{"title": "Pen", "pricePerUnit": 1.5})
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = doJSON(t, http.MethodPost, server.URL+"/products", asAdmin(),
		map[string]any{"title": "Pen"})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	// duplicates answer 400 on this surface, not 409
	res, body := doJSON(t, http.MethodPost, server.URL+"/products", asAdmin(),
		map[string]any{"uuid": "p1", "title": "Pen", "pricePerUnit": 1.5})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(body), "uuid")
}

func TestUpdateProduct(t *testing.T) {
	server := newTestServer(t)

	res, _ := doJSON(t, http.MethodPut, server.URL+"/products/p1", nil,
		map[string]any{"title": "x"})
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = doJSON(t, http.MethodPut, server.URL+"/products/ghost", asAdmin(),
		map[string]any{"title": "x"})
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	// pages exists on p2 but not on p1
	res, body := doJSON(t, http.MethodPut, server.URL+"/products/p1", asAdmin(),
		map[string]any{"pages": 99})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(body), "pages")

	res, body = doJSON(t, http.MethodPut, server.URL+"/products/p1", asAdmin(),
		map[string]any{"title": "Better Pen", "stock": 11})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, "Better Pen", updated["title"])
	require.Equal(t, float64(11), updated["stock"])

	// uuid is one of the record's own keys, so an update may rename it
	res, body = doJSON(t, http.MethodPut, server.URL+"/products/p1", asAdmin(),
		map[string]any{"uuid": "p1-renamed"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, "p1-renamed", updated["uuid"])

	res, _ = doJSON(t, http.MethodGet, server.URL+"/products/p1", nil, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	res, body = doJSON(t, http.MethodGet, server.URL+"/products/p1-renamed", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, "Better Pen", updated["title"])
}

func TestListProducts_MissingFileIsStorageError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	server := newTestServerWithPaths(t, filepath.Join(dir, "absent.json"), filepath.Join(dir, "cart.json"))

	res, _ := doJSON(t, http.MethodGet, server.URL+"/products", nil, nil)
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestCartSurface(t *testing.T) {
	server := newTestServer(t)
	owner := map[string]string{HeaderUser: "juan"}

	// wrong identity is refused on read and write
	res, _ := doJSON(t, http.MethodGet, server.URL+"/cart", map[string]string{HeaderUser: "maria"}, nil)
	require.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = doJSON(t, http.MethodPost, server.URL+"/cart", nil, map[string]any{"uuid": "p1"})
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	// a never-written cart reads as empty
	res, body := doJSON(t, http.MethodGet, server.URL+"/cart", owner, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, "[]", string(body))

	res, _ = doJSON(t, http.MethodPost, server.URL+"/cart", owner,
		map[string]any{"uuid": "p1", "title": "Fountain Pen", "pricePerUnit": 12.5})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	// duplicate uuids append, the server cart never merges
	res, _ = doJSON(t, http.MethodPost, server.URL+"/cart", owner,
		map[string]any{"uuid": "p1", "title": "Fountain Pen", "pricePerUnit": 12.5})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body = doJSON(t, http.MethodGet, server.URL+"/cart", owner, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)

	// removal is ungated and removes the first match only
	res, _ = doJSON(t, http.MethodDelete, server.URL+"/cart/p1", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, body = doJSON(t, http.MethodGet, server.URL+"/cart", owner, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)

	res, _ = doJSON(t, http.MethodDelete, server.URL+"/cart/ghost", nil, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}
