package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "")

	cfg := Load()
	require.Equal(t, ":8080", cfg.Port)
	require.Empty(t, cfg.DBPath)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 0, cfg.RedisDB)
	require.NotEmpty(t, cfg.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/auction.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "2h")

	cfg := Load()
	require.Equal(t, ":9090", cfg.Port)
	require.Equal(t, "/tmp/auction.db", cfg.DBPath)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "hunter2", cfg.RedisPassword)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, "secret", cfg.JWTSecret)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoad_InvalidRedisDBIgnored(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	require.Equal(t, 0, cfg.RedisDB)
}
