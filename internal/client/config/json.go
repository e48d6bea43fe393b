package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/seedshop/internal/flagx"
)

// jsonConfig is the DTO for the optional JSON config file.
type jsonConfig struct {
	ServerBaseURL         string `json:"server_base_url"`
	DatabasePath          string `json:"database_path"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Absent flag means no JSON is loaded. Read or parse errors panic; the CLI
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
}
