// Package server implements lectiod, the annotation mirror that lectio
// clients push bookmarks, highlights and notes to. The local store on the
// client stays authoritative; this server is the best-effort copy.
package server

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the lectiod runtime configuration, loaded from the
// environment (optionally seeded by a .env file).
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AdminKey    string
	TokenTTL    time.Duration
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("LECTIOD_PORT", "8080"),
		DatabaseURL: getEnv("LECTIOD_DATABASE_URL", ""),
		JWTSecret:   getEnv("LECTIOD_JWT_SECRET", ""),
		AdminKey:    getEnv("LECTIOD_ADMIN_KEY", ""),
		TokenTTL:    90 * 24 * time.Hour,
	}

	if ttl := os.Getenv("LECTIOD_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("parse LECTIOD_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("LECTIOD_DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("LECTIOD_JWT_SECRET not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
