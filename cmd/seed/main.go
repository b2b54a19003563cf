// Command seed writes a demo catalog to the products file so a fresh
// checkout has something to browse. Existing data is kept unless -force.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mercadito/shop-api/internal/app/api"
	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
	"github.com/mercadito/shop-api/internal/platform/jsonstore"
)

func main() {
	force := flag.Bool("force", false, "overwrite the products file if it already exists")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	path := cfg.ProductsPath()
	if _, err := os.Stat(path); err == nil && !*force {
		log.Fatalf("%s already exists; pass -force to overwrite", path)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	col := jsonstore.Open[domain.Product](path)
	if err := col.Save(ctx, demoCatalog()); err != nil {
		log.Fatalf("failed to write demo catalog: %v", err)
	}
	logger.Info("demo catalog written", slog.String("path", path), slog.Int("products", len(demoCatalog())))
}

func demoCatalog() []domain.Product {
	stock := func(n float64) *float64 { return &n }
	return []domain.Product{
		{UUID: "9f7b9a0e-6cf2-4a52-9a3e-111111111111", Title: "Fountain Pen", PricePerUnit: 12.5, Category: "office", Stock: stock(40)},
		{UUID: "9f7b9a0e-6cf2-4a52-9a3e-222222222222", Title: "Spiral Notebook", PricePerUnit: 3.2, Category: "office", Stock: stock(120), Attrs: map[string]any{"pages": 120}},
		{UUID: "9f7b9a0e-6cf2-4a52-9a3e-333333333333", Title: "Ceramic Mug", PricePerUnit: 7, Category: "kitchen", Stock: stock(25)},
		{UUID: "9f7b9a0e-6cf2-4a52-9a3e-444444444444", Title: "Chef Knife", PricePerUnit: 34.9, Category: "kitchen", Stock: stock(8), Attrs: map[string]any{"lengthCm": 20}},
		{UUID: "9f7b9a0e-6cf2-4a52-9a3e-555555555555", Title: "Desk Lamp", PricePerUnit: 21, Category: "home", Stock: stock(15)},
	}
}
