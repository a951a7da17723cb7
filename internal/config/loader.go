package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"walletd/internal/networks"
)

// CORS configures the optional CORS middleware.
type CORS struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Config holds runtime parameters for walletd.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr           string                `json:"addr" yaml:"addr" toml:"addr"`
	Debug          bool                  `json:"debug" yaml:"debug" toml:"debug"`
	LogLevel       string                `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile        string                `json:"log_file" yaml:"log_file" toml:"log_file"`
	DefaultNetwork string                `json:"default_network" yaml:"default_network" toml:"default_network"`
	Networks       []networks.Descriptor `json:"networks" yaml:"networks" toml:"networks"`
	CORS           CORS                  `json:"cors" yaml:"cors" toml:"cors"`
	EmitRatePerSec float64               `json:"emit_rate_per_sec" yaml:"emit_rate_per_sec" toml:"emit_rate_per_sec"`
	EmitBurst      int                   `json:"emit_burst" yaml:"emit_burst" toml:"emit_burst"`
	MaxBodyBytes   int64                 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	StreamBuffer   int                   `json:"stream_buffer" yaml:"stream_buffer" toml:"stream_buffer"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unspecified fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DefaultNetwork == "" {
		c.DefaultNetwork = networks.DefaultNetworkID
	}
	if c.EmitRatePerSec <= 0 {
		c.EmitRatePerSec = 50
	}
	if c.EmitBurst <= 0 {
		c.EmitBurst = 100
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.StreamBuffer <= 0 {
		c.StreamBuffer = 64
	}
	if c.CORS.Enabled {
		if len(c.CORS.AllowedOrigins) == 0 {
			c.CORS.AllowedOrigins = []string{"*"}
		}
		if len(c.CORS.AllowedMethods) == 0 {
			c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
		}
		if len(c.CORS.AllowedHeaders) == 0 {
			c.CORS.AllowedHeaders = []string{"Accept", "Content-Type", "X-Request-Id"}
		}
	}
}

// Load reads a configuration file based on its extension and applies
// defaults. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
