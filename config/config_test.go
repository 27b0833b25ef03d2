package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("yaml with env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
postgres:
  dsn: postgres://file
nats:
  url: nats://file:4222
http:
  addr: ":9000"
sidegames:
  result_cache_size: 64
  default_timezone: America/Chicago
`), 0o600))
		t.Setenv("DATABASE_URL", "")
		t.Setenv("NATS_URL", "nats://env:4222")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "postgres://file", cfg.Postgres.DSN)
		assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
		assert.Equal(t, ":9000", cfg.HTTP.Addr)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, 64, cfg.SideGames.ResultCacheSize)
		assert.Equal(t, "America/Chicago", cfg.SideGames.DefaultTimezone)
		assert.Equal(t, 2*time.Second, cfg.SideGames.RecomputeDelay)
		assert.Equal(t, 20, cfg.HTTP.RateBurst)
	})

	t.Run("env only", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("NATS_URL", "nats://env:4222")
		t.Setenv("RECOMPUTE_DELAY", "500ms")

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
		assert.Equal(t, 500*time.Millisecond, cfg.SideGames.RecomputeDelay)
		assert.Equal(t, 512, cfg.SideGames.ResultCacheSize)
		assert.Equal(t, 24*time.Hour, cfg.JWT.DefaultTTL)
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("NATS_URL", "nats://env:4222")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("NATS_URL", "nats://env:4222")
		t.Setenv("RECOMPUTE_DELAY", "soon")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "RECOMPUTE_DELAY")
	})
}
