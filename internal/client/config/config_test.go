package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", cfg.ServerBaseURL)
	assert.Equal(t, "seedshop.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"cli", "-a", "http://shop.example.com", "-t", "3"}

	cfg := LoadConfig()

	assert.Equal(t, "http://shop.example.com", cfg.ServerBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "seedshop.db", cfg.DatabasePath)
}

func TestJsonOverlayAndFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://json.example.com",
		"database_path": "json.db",
		"request_timeout_seconds": 7
	}`), 0o600))

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"cli", "-c", path, "-a", "http://flag.example.com"}

	cfg := LoadConfig()

	// flags beat JSON, JSON beats defaults
	assert.Equal(t, "http://flag.example.com", cfg.ServerBaseURL)
	assert.Equal(t, "json.db", cfg.DatabasePath)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}
