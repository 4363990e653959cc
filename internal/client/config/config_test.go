package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8081", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.ToastTimeout)
	require.NoError(t, c.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url": "http://from-json:1",
		"listen_addr":  ":7000",
	})

	cfg, err := Load([]string{"-c", path, "-u", "http://from-flag:2"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:2", cfg.APIBaseURL)
	assert.Equal(t, ":7000", cfg.ListenAddr)
}

func TestLoad_NoArgsUsesDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NotNil(t, cfg, "Load must not return nil")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"relative url", func(c *Config) { c.APIBaseURL = "/api" }},
		{"bad scheme", func(c *Config) { c.APIBaseURL = "ftp://x" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero sweep", func(c *Config) { c.SweepInterval = 0 }},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mut(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	_, err := Load([]string{"-u", "not a url"})
	require.Error(t, err)
}
