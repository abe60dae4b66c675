package dispatcher

import (
	"fmt"
	"os"
	"strings"
)

// Config carries environment-driven settings for the dispatcher process.
type Config struct {
	PostgresDSN   string
	RedisAddr     string
	CatalogURL    string
	ConsumerGroup string
}

// LoadConfig reads environment variables and validates basic constraints.
// The dispatcher cannot run without a broker to consume from.
func LoadConfig() (Config, error) {
	cfg := Config{
		PostgresDSN:   strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CatalogURL:    envDefault("CATALOG_URL", "http://localhost:9001"),
		ConsumerGroup: envDefault("DISPATCH_CONSUMER_GROUP", "order-service"),
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
