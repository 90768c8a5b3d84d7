// Package config loads the service configuration from YAML.
//
// Every section defaults to working values, so a file only needs the keys it
// changes:
//
//	server:
//	  port: 50051
//	  log_level: debug
//	redis:
//	  enabled: true
//	  endpoint: localhost:6379
//	  level_ttl: 24h
//	generator:
//	  width: 60
//	  height: 40
//	  layout:
//	    cave_fill_percent: 40
//	validator:
//	  min_connectivity_ratio: 0.75
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/orchestrators/level"
	"github.com/KirkDiggler/rpg-levelgen/internal/redis"
	"github.com/KirkDiggler/rpg-levelgen/internal/services/layout"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// Log formats accepted by the server
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the root of the configuration file
type Config struct {
	Server    ServerConfig         `yaml:"server" json:"server"`
	Redis     RedisConfig          `yaml:"redis" json:"redis"`
	Generator GeneratorConfig      `yaml:"generator" json:"generator"`
	Validator validator.Thresholds `yaml:"validator" json:"validator"`
}

// ServerConfig configures the gRPC listener and logging
type ServerConfig struct {
	Port      int    `yaml:"port" json:"port"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// RedisConfig configures level storage. When disabled levels live in memory.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Endpoint string        `yaml:"endpoint" json:"endpoint"`
	LevelTTL time.Duration `yaml:"level_ttl" json:"level_ttl"`
	Pool     redis.Options `yaml:"pool" json:"pool"`
}

// GeneratorConfig configures the level orchestrator and the layout producer
type GeneratorConfig struct {
	level.Settings `yaml:",inline"`
	TileSize       int           `yaml:"tile_size" json:"tile_size"`
	Layout         layout.Config `yaml:"layout" json:"layout"`
}

// Default returns a configuration that runs a local server with in-memory storage
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      50051,
			LogLevel:  "info",
			LogFormat: LogFormatText,
		},
		Redis: RedisConfig{
			Endpoint: "localhost:6379",
			LevelTTL: 24 * time.Hour,
		},
		Generator: GeneratorConfig{
			Settings: level.DefaultSettings(),
			TileSize: validator.DefaultTileSize,
			Layout:   *layout.DefaultConfig(),
		},
		Validator: validator.DefaultThresholds(),
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.InvalidArgumentf("invalid config yaml: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("Server.Port", c.Server.Port, 1, 65535, vb)
	if _, err := c.Server.SlogLevel(); err != nil {
		vb.Fieldf("Server.LogLevel", "unknown level %q", c.Server.LogLevel)
	}
	errors.ValidateEnum("Server.LogFormat", c.Server.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)

	if c.Redis.Enabled {
		errors.ValidateRequired("Redis.Endpoint", c.Redis.Endpoint, vb)
	}
	if c.Redis.LevelTTL < 0 {
		vb.Field("Redis.LevelTTL", "must not be negative")
	}
	if err := c.Redis.Pool.Validate(); err != nil {
		vb.Field("Redis.Pool", errors.GetMessage(err))
	}

	if err := c.Generator.Settings.Validate(); err != nil {
		vb.Field("Generator", errors.GetMessage(err))
	}
	errors.ValidatePositive("Generator.TileSize", c.Generator.TileSize, vb)
	if err := c.Generator.Layout.Validate(); err != nil {
		vb.Field("Generator.Layout", errors.GetMessage(err))
	}

	if err := c.Validator.Validate(); err != nil {
		vb.Field("Validator", errors.GetMessage(err))
	}

	return vb.Build()
}

// SlogLevel parses the configured log level
func (s ServerConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", s.LogLevel)
	}
	return lvl, nil
}
