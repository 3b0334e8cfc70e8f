package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	DatabaseURL    string
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	RedisURL       string
	CacheTTL       time.Duration
	LogLevel       string
	LogFormat      string
	SeedDemoData   bool
}

// loadConfig reads settings from the environment, with
// config/local.env as a development convenience.
func loadConfig() (config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         envOr("PORT", "8080"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     24 * time.Hour,
		RedisURL:     os.Getenv("REDIS_URL"),
		CacheTTL:     5 * time.Minute,
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		SeedDemoData: os.Getenv("SEED_DEMO_DATA") == "true",
	}

	if cfg.DatabaseURL == "" {
		return config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return config{}, fmt.Errorf("JWT_SECRET is required")
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
