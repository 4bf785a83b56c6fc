package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ShopifyDomain string `envconfig:"SHOPIFY_STORE_DOMAIN" required:"true"`
	ShopifyToken  string `envconfig:"SHOPIFY_STOREFRONT_ACCESS_TOKEN" required:"true"`
	APIVersion    string `envconfig:"SHOPIFY_API_VERSION" default:"2024-10"`

	// DatabaseURL selects the Postgres snapshot store; when empty the
	// cart persists to SnapshotPath instead.
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	SnapshotPath string `envconfig:"CART_SNAPSHOT_PATH" default:"cart.json"`
	CartOwnerID  string `envconfig:"CART_OWNER_ID" default:"storefront"`

	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("envconfig.Process: %w", err)
	}

	return cfg, nil
}
