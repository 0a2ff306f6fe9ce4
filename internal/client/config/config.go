// Package config handles configuration for the carnet client, including
// environment variables, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"os"
)

// Config holds runtime settings for the carnet CLI.
//
// Fields:
//   - StoreURL: base URL of the row-store service.
//   - StoreKey: access key sent as a bearer token on every request.
//
// Both are required; their absence is a fatal startup condition.
type Config struct {
	StoreURL string
	StoreKey string
}

// parseEnv overlays values from the environment.
func parseEnv(c *Config) {
	if v := os.Getenv("CARNET_STORE_URL"); v != "" {
		c.StoreURL = v
	}
	if v := os.Getenv("CARNET_STORE_KEY"); v != "" {
		c.StoreKey = v
	}
}

// Validate reports whether the required values are present.
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return errors.New("store URL is required (CARNET_STORE_URL or -u)")
	}
	if c.StoreKey == "" {
		return errors.New("store access key is required (CARNET_STORE_KEY or -k)")
	}
	return nil
}

// LoadConfig builds a Config from the environment, an optional JSON file,
// and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
