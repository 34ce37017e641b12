// SPDX-License-Identifier: MIT

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
	t.Setenv("REELGATE_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 64*1024, cfg.ChunkSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RateLimitEnabled)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("REELGATE_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REELGATE_SECRET")
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("REELGATE_SECRET", "short")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	file := `
listenAddr: ":9999"
secret: "file-secret-file-secret-file"
tokenTTL: 5m
chunkSize: 8192
`
	require.NoError(t, os.WriteFile(path, []byte(file), 0o600))

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.ListenAddr)
		assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
		assert.Equal(t, 8192, cfg.ChunkSize)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("REELGATE_LISTEN", ":7070")
		t.Setenv("REELGATE_TOKEN_TTL", "30m")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.ListenAddr)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
		// untouched by env, file value wins
		assert.Equal(t, 8192, cfg.ChunkSize)
	})
}

func TestValidate(t *testing.T) {
	base := Defaults()
	base.Secret = "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(c *AppConfig) {}, ""},
		{"zero ttl", func(c *AppConfig) { c.TokenTTL = 0 }, "TTL"},
		{"negative chunk", func(c *AppConfig) { c.ChunkSize = -1 }, "chunk size"},
		{"no media root", func(c *AppConfig) { c.MediaRoot = "" }, "media root"},
		{"no db", func(c *AppConfig) { c.DBPath = "" }, "database"},
		{"bad rate limit", func(c *AppConfig) { c.RateLimitRPM = 0 }, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	t.Setenv("REELGATE_TEST_INT", "not-a-number")
	assert.Equal(t, 42, ParseInt("REELGATE_TEST_INT", 42))

	t.Setenv("REELGATE_TEST_BOOL", "yes")
	assert.True(t, ParseBool("REELGATE_TEST_BOOL", false))

	t.Setenv("REELGATE_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, ParseDuration("REELGATE_TEST_DUR", time.Minute))

	assert.Equal(t, "fallback", ParseString("REELGATE_TEST_MISSING", "fallback"))
}
