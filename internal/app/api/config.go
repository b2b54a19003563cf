package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the settings for the API process. Values come from an
// optional YAML file pointed at by SHOP_CONFIG, with environment variables
// taking precedence over both the file and the defaults.
type Config struct {
	Port            string `yaml:"port"`
	DataDir         string `yaml:"dataDir"`
	ProductsFile    string `yaml:"productsFile"`
	CartFile        string `yaml:"cartFile"`
	CartUser        string `yaml:"cartUser"`
	TracingDisabled bool   `yaml:"tracingDisabled"`
}

func defaultConfig() Config {
	return Config{
		Port:         "3100",
		DataDir:      "data",
		ProductsFile: "products.json",
		CartFile:     "cart.json",
		CartUser:     "juan",
	}
}

// LoadConfig merges defaults, the optional YAML file, and environment
// variables, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := strings.TrimSpace(os.Getenv("SHOP_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envDefault("PORT", cfg.Port)
	cfg.DataDir = envDefault("SHOP_DATA_DIR", cfg.DataDir)
	cfg.ProductsFile = envDefault("SHOP_PRODUCTS_FILE", cfg.ProductsFile)
	cfg.CartFile = envDefault("SHOP_CART_FILE", cfg.CartFile)
	cfg.CartUser = envDefault("SHOP_CART_USER", cfg.CartUser)
	if raw := os.Getenv("SHOP_TRACING_DISABLED"); raw != "" {
		cfg.TracingDisabled = isTruthy(raw)
	}

	if cfg.CartUser == "" {
		return Config{}, fmt.Errorf("cart user must not be empty")
	}
	return cfg, nil
}

// ProductsPath is the catalog file location under the data directory.
func (c Config) ProductsPath() string {
	return filepath.Join(c.DataDir, c.ProductsFile)
}

// CartPath is the cart file location under the data directory.
func (c Config) CartPath() string {
	return filepath.Join(c.DataDir, c.CartFile)
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
