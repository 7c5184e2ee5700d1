package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the chat persistence service.
// Environment variables are parsed from the CHAT_BACKEND_ prefix, e.g.
// CHAT_BACKEND_DRIVER, CHAT_BACKEND_POSTGRES_DSN.
type Config struct {
	// BuildTarget selects the high-level environment: local or cloud.
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Driver picks the backing entity store: memory, sqlite or postgres.
	// "auto" derives it from BuildTarget.
	Driver string `envconfig:"DRIVER" default:"auto"`

	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/chatstore.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// BootstrapTimeoutSeconds bounds async schema bootstrap checks.
	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"30"`
}

// ResolveDefaults validates BuildTarget and derives Driver when set to "auto"
// or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDriver string
	switch c.BuildTarget {
	case "local":
		defaultDriver = "sqlite"
	case "cloud":
		defaultDriver = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.Driver == "" || c.Driver == "auto" {
		c.Driver = defaultDriver
	}

	allowed := map[string]bool{"memory": true, "sqlite": true, "postgres": true}
	if !allowed[c.Driver] {
		return fmt.Errorf("unsupported DRIVER: %s", c.Driver)
	}
	if c.Driver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("CHAT_BACKEND_POSTGRES_DSN is required when DRIVER=postgres")
	}
	return nil
}

// New creates a Config by parsing CHAT_BACKEND_-prefixed environment
// variables and resolving derived defaults.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CHAT_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
