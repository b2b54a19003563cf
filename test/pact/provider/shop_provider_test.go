//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/mercadito/shop-api/test/pact"

	cartmemory "github.com/mercadito/shop-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/mercadito/shop-api/internal/domains/cart/application"
	catalogmemory "github.com/mercadito/shop-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/mercadito/shop-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/mercadito/shop-api/internal/domains/catalog/application"
	catalogdomain "github.com/mercadito/shop-api/internal/domains/catalog/domain"
	"github.com/mercadito/shop-api/internal/shared/authz"
	shopserver "github.com/mercadito/shop-api/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShopProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductUUID)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetCatalog(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *catalogmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	authorizer, err := authz.New(pacttest.CartUser)
	require.NoError(t, err)

	catalogRepo := catalogmemory.NewRepository()
	catalogService := catalogobs.New(catalogapp.NewService(catalogRepo, authorizer))
	cartService := cartapp.NewService(cartmemory.NewRepository(), authorizer, pacttest.CartUser)

	handlers := shopserver.ApiHandleFunctions{
		ProductsAPI: shopserver.NewProductsAPI(catalogService),
		CartAPI:     shopserver.NewCartAPI(cartService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = shopserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   catalogRepo,
		server: server,
	}
}

func (a *contractProviderApp) resetCatalog(t testing.TB) {
	t.Helper()
	products, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, product := range products {
		_, _ = a.repo.Remove(context.Background(), product.UUID)
	}
}

func (a *contractProviderApp) seedProduct(t testing.TB, uuid string) {
	t.Helper()
	product := &catalogdomain.Product{
		UUID:         uuid,
		Title:        "Pact Fountain Pen",
		PricePerUnit: 12.5,
		Category:     "office",
	}
	require.NoError(t, product.Validate())
	_, err := a.repo.Insert(context.Background(), product)
	require.NoError(t, err)
}
