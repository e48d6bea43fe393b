package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/seedshop/internal/flagx"
)

// jsonConfig is the DTO for the optional JSON config file.
type jsonConfig struct {
	EndpointAddr    string  `json:"address"`
	DatabaseDSN     string  `json:"database_dsn"`
	SecretKey       string  `json:"jwt_secret"`
	TokenTTLMinutes int     `json:"token_ttl_minutes"`
	RateLimitRPS    float64 `json:"rate_limit_rps"`
	RateLimitBurst  int     `json:"rate_limit_burst"`
	AdminEmail      string  `json:"admin_email"`
	AdminPassword   string  `json:"admin_password"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Absent flag means no JSON is loaded. Read or parse errors panic; the server
// has no useful way to continue with a half-read config.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenTTLMinutes > 0 {
		cfg.AccessTokenValidityDuration = time.Duration(jc.TokenTTLMinutes) * time.Minute
	}
	if jc.RateLimitRPS > 0 {
		cfg.RateLimitRPS = jc.RateLimitRPS
	}
	if jc.RateLimitBurst > 0 {
		cfg.RateLimitBurst = jc.RateLimitBurst
	}
	if jc.AdminEmail != "" {
		cfg.AdminEmail = jc.AdminEmail
	}
	if jc.AdminPassword != "" {
		cfg.AdminPassword = jc.AdminPassword
	}
}
