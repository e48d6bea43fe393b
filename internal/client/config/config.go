// Package config handles configuration for the storefront CLI, layering
// defaults, an optional JSON file, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the shop API, e.g. http://localhost:8000.
//   - DatabasePath: path of the local SQLite state database.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.DatabasePath = "seedshop.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was given) and command-line flags. Later sources
// take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
