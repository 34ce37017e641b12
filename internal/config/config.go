// SPDX-License-Identifier: MIT

// Package config loads daemon configuration with precedence
// ENV > config file > defaults. The resulting AppConfig is treated as
// immutable for the lifetime of the process.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds all runtime settings for the reelgate daemon.
type AppConfig struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `yaml:"listenAddr"`

	// Secret keys the playback URL signatures. Required; the daemon
	// refuses to start without it.
	Secret string `yaml:"secret"`

	// TokenTTL is the validity window of a signed playback URL.
	TokenTTL time.Duration `yaml:"tokenTTL"`

	// MediaRoot is the directory local media files are confined to.
	MediaRoot string `yaml:"mediaRoot"`

	// DBPath is the SQLite database file holding catalog, viewer and
	// history data.
	DBPath string `yaml:"dbPath"`

	// ChunkSize is the read size used while streaming file content.
	ChunkSize int `yaml:"chunkSize"`

	LogLevel string `yaml:"logLevel"`

	// Rate limiting for the playback URL issuing endpoint.
	RateLimitEnabled bool `yaml:"rateLimitEnabled"`
	RateLimitRPM     int  `yaml:"rateLimitRPM"`

	// Tracing.
	TraceEnabled  bool    `yaml:"traceEnabled"`
	TraceExporter string  `yaml:"traceExporter"` // "grpc" or "http"
	TraceEndpoint string  `yaml:"traceEndpoint"`
	TraceSampling float64 `yaml:"traceSampling"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ListenAddr:       ":8080",
		TokenTTL:         15 * time.Minute,
		MediaRoot:        "/var/lib/reelgate/media",
		DBPath:           "/var/lib/reelgate/reelgate.db",
		ChunkSize:        64 * 1024,
		LogLevel:         "info",
		RateLimitEnabled: true,
		RateLimitRPM:     60,
		TraceExporter:    "grpc",
		TraceSampling:    1.0,
	}
}

// Load builds the effective configuration. filePath may be empty, in which
// case only environment variables and defaults apply.
func Load(filePath string) (AppConfig, error) {
	cfg := Defaults()

	if filePath != "" {
		raw, err := os.ReadFile(filePath) // #nosec G304 -- operator-supplied path
		if err != nil {
			return AppConfig{}, fmt.Errorf("config: read %s: %w", filePath, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("config: parse %s: %w", filePath, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	cfg.ListenAddr = ParseString("REELGATE_LISTEN", cfg.ListenAddr)
	cfg.Secret = ParseString("REELGATE_SECRET", cfg.Secret)
	cfg.TokenTTL = ParseDuration("REELGATE_TOKEN_TTL", cfg.TokenTTL)
	cfg.MediaRoot = ParseString("REELGATE_MEDIA_ROOT", cfg.MediaRoot)
	cfg.DBPath = ParseString("REELGATE_DB", cfg.DBPath)
	cfg.ChunkSize = ParseInt("REELGATE_CHUNK_SIZE", cfg.ChunkSize)
	cfg.LogLevel = ParseString("REELGATE_LOG_LEVEL", cfg.LogLevel)
	cfg.RateLimitEnabled = ParseBool("REELGATE_RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.RateLimitRPM = ParseInt("REELGATE_RATE_LIMIT_RPM", cfg.RateLimitRPM)
	cfg.TraceEnabled = ParseBool("REELGATE_TRACE_ENABLED", cfg.TraceEnabled)
	cfg.TraceExporter = ParseString("REELGATE_TRACE_EXPORTER", cfg.TraceExporter)
	cfg.TraceEndpoint = ParseString("REELGATE_TRACE_ENDPOINT", cfg.TraceEndpoint)
	cfg.TraceSampling = ParseFloat("REELGATE_TRACE_SAMPLING", cfg.TraceSampling)
}

// Validate rejects configurations the daemon cannot run with.
func (c AppConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("config: REELGATE_SECRET must be set (playback URLs cannot be signed without it)")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("config: secret too short (%d bytes, need at least 16)", len(c.Secret))
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: token TTL must be positive, got %s", c.TokenTTL)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("config: chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.MediaRoot == "" {
		return fmt.Errorf("config: media root must be set")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: database path must be set")
	}
	if c.RateLimitEnabled && c.RateLimitRPM <= 0 {
		return fmt.Errorf("config: rate limit RPM must be positive, got %d", c.RateLimitRPM)
	}
	return nil
}
