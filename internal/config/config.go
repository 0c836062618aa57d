// Package config reads the runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything main needs to wire the server together
type Config struct {
	// Port is the listen address, e.g. ":8080"
	Port string
	// DBPath is the SQLite database file; empty selects the in-memory store
	DBPath string
	// RedisAddr enables Redis-backed bid fan-out when non-empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// JWTSecret signs session tokens
	JWTSecret string
	// TokenTTL bounds how long a login stays valid
	TokenTTL time.Duration
}

// Load builds the configuration from environment variables, applying
// defaults suitable for local development.
func Load() Config {
	cfg := Config{
		Port:          ":8080",
		DBPath:        os.Getenv("DB_PATH"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      24 * time.Hour,
	}

	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = fmt.Sprintf(":%s", p)
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.RedisDB = n
		}
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.TokenTTL = d
		}
	}
	if cfg.JWTSecret == "" {
		// development fallback; production deployments must set JWT_SECRET
		cfg.JWTSecret = "insecure-local-development-secret"
	}
	return cfg
}
