package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// empty variables leave the current value in place.
//
// Recognized variables:
//
//	RUN_ADDR         HTTP bind address (e.g. ":3000")
//	STORAGE_BACKEND  "sqlite", "postgres" or "file"
//	DATABASE_DSN     SQLite path or PostgreSQL DSN
//	DATA_DIR         directory for file-backed collections and legacy JSON
//	JWT_SECRET       HMAC secret for signing tokens
//	TOKEN_VALIDITY   token lifetime as a Go duration string (e.g. "168h")
func parseEnv(config *Config) {
	if v := os.Getenv("RUN_ADDR"); v != "" {
		config.RunAddr = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		config.StorageBackend = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
