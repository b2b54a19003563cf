// Package api boots the shop HTTP API: configuration, observability,
// file-backed repositories, domain services, and the gin router.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	shopserver "github.com/mercadito/shop-api/server"

	cartfile "github.com/mercadito/shop-api/internal/domains/cart/adapters/file"
	cartapp "github.com/mercadito/shop-api/internal/domains/cart/application"
	catalogfile "github.com/mercadito/shop-api/internal/domains/catalog/adapters/file"
	catalogobs "github.com/mercadito/shop-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/mercadito/shop-api/internal/domains/catalog/application"
	"github.com/mercadito/shop-api/internal/platform/observability"
	"github.com/mercadito/shop-api/internal/shared/authz"
)

// Run boots the shop HTTP API with observability, repositories, and
// authorization wired, and blocks serving requests.
func Run(ctx context.Context) error {
	const serviceName = "shop-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := observability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	authorizer, err := authz.New(cfg.CartUser)
	if err != nil {
		return fmt.Errorf("failed to build authorizer: %w", err)
	}

	catalogRepo := catalogfile.NewRepository(cfg.ProductsPath())
	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo, authorizer),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	cartService := cartapp.NewService(cartfile.NewRepository(cfg.CartPath()), authorizer, cfg.CartUser)

	handlers := shopserver.ApiHandleFunctions{
		ProductsAPI: shopserver.NewProductsAPI(catalogService),
		CartAPI:     shopserver.NewCartAPI(cartService),
	}

	router := shopserver.NewRouter(handlers)
	if !cfg.TracingDisabled {
		router.Use(otelgin.Middleware(serviceName))
	}

	addr := ":" + cfg.Port
	logger.Info("shop API listening",
		slog.String("addr", addr),
		slog.String("products", cfg.ProductsPath()),
		slog.String("cart", cfg.CartPath()),
		slog.String("cartUser", cfg.CartUser),
	)
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}
