// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the to-do server.
//
// Fields:
//   - RunAddr: bind address for the HTTP endpoint.
//   - StorageBackend: "sqlite" (default), "postgres" or "file".
//   - DatabaseDSN: SQLite file path or PostgreSQL DSN, depending on backend.
//   - DataDir: directory with the JSON collections used by the file backend
//     and with the legacy todos.json picked up by the startup import.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the test
//     default in prod.
//   - TokenValidityDuration: bearer token lifetime.
type Config struct {
	RunAddr               string
	StorageBackend        string
	DatabaseDSN           string
	DataDir               string
	SecretKey             string
	TokenValidityDuration time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.RunAddr = ":3000"
	c.StorageBackend = "sqlite"
	c.DatabaseDSN = "data/todos.db"
	c.DataDir = "data"
	c.SecretKey = "your-secret-key-change-in-production"
	c.TokenValidityDuration = 7 * 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables and finally
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
