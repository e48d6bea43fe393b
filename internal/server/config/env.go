package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env entries.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SEEDSHOP_ADDRESS"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("SEEDSHOP_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SEEDSHOP_JWT_SECRET"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("SEEDSHOP_TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AccessTokenValidityDuration = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("SEEDSHOP_ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("SEEDSHOP_ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
}
