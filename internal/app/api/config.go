package api

import (
	"fmt"
	"os"
	"strings"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
	RedisAddr   string
	CatalogURL  string
	JWTKey      string
	JWTIssuer   string
	JWTAudience string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CatalogURL:  envDefault("CATALOG_URL", "http://localhost:9001"),
		JWTKey:      strings.TrimSpace(os.Getenv("JWT_SIGNING_KEY")),
		JWTIssuer:   strings.TrimSpace(os.Getenv("JWT_ISSUER")),
		JWTAudience: strings.TrimSpace(os.Getenv("JWT_AUDIENCE")),
	}
	if cfg.JWTKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
