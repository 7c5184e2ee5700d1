package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToLocalSqlite(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.BuildTarget)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.NotEmpty(t, cfg.SQLitePath)
}

func TestNewReadsPrefixedEnvironment(t *testing.T) {
	t.Setenv("CHAT_BACKEND_DRIVER", "memory")
	t.Setenv("CHAT_BACKEND_BUILD_TARGET", "local")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Driver)
}

func TestResolveDefaults(t *testing.T) {
	t.Run("cloud derives postgres", func(t *testing.T) {
		cfg := &Config{BuildTarget: "cloud", Driver: "auto", PostgresDSN: "postgres://x"}
		require.NoError(t, cfg.ResolveDefaults())
		assert.Equal(t, "postgres", cfg.Driver)
	})

	t.Run("postgres requires dsn", func(t *testing.T) {
		cfg := &Config{BuildTarget: "cloud", Driver: "postgres"}
		assert.Error(t, cfg.ResolveDefaults())
	})

	t.Run("unknown build target rejected", func(t *testing.T) {
		cfg := &Config{BuildTarget: "staging", Driver: "auto"}
		assert.Error(t, cfg.ResolveDefaults())
	})

	t.Run("unknown driver rejected", func(t *testing.T) {
		cfg := &Config{BuildTarget: "local", Driver: "cassandra"}
		assert.Error(t, cfg.ResolveDefaults())
	})
}
