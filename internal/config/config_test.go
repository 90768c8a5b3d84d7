package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/config"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaultIsValid() {
	cfg := config.Default()

	s.NoError(cfg.Validate())
	s.False(cfg.Redis.Enabled)
	s.Equal(40, cfg.Generator.Width)
	s.Equal(30, cfg.Generator.Height)
	s.Equal(validator.DefaultTileSize, cfg.Generator.TileSize)
	s.Equal(validator.DefaultThresholds(), cfg.Validator)
}

func (s *ConfigTestSuite) TestParseOverridesDefaults() {
	cfg, err := config.Parse(strings.NewReader(`
server:
  port: 6000
  log_level: debug
  log_format: json
redis:
  enabled: true
  endpoint: redis:6379
  level_ttl: 90m
  pool:
    pool_size: 8
generator:
  width: 60
  height: 45
  default_style: cave
  validation_attempts: 5
  layout:
    cave_fill_percent: 40
validator:
  min_connectivity_ratio: 0.75
  repair_attempts: 5
`))
	s.Require().NoError(err)

	s.Equal(6000, cfg.Server.Port)
	s.Equal(config.LogFormatJSON, cfg.Server.LogFormat)
	s.True(cfg.Redis.Enabled)
	s.Equal("redis:6379", cfg.Redis.Endpoint)
	s.Equal(90*time.Minute, cfg.Redis.LevelTTL)
	s.Equal(8, cfg.Redis.Pool.PoolSize)
	s.Equal(60, cfg.Generator.Width)
	s.Equal(45, cfg.Generator.Height)
	s.Equal(entities.StyleCave, cfg.Generator.DefaultStyle)
	s.Equal(5, cfg.Generator.ValidationAttempts)
	s.Equal(40, cfg.Generator.Layout.CaveFillPercent)
	s.Equal(0.75, cfg.Validator.MinConnectivityRatio)
	s.Equal(5, cfg.Validator.RepairAttempts)

	// untouched keys keep their defaults
	s.Equal(200, cfg.Generator.MaxWidth)
	s.Equal(validator.DefaultThresholds().PathSamples, cfg.Validator.PathSamples)

	lvl, err := cfg.Server.SlogLevel()
	s.Require().NoError(err)
	s.Equal(slog.LevelDebug, lvl)
}

func (s *ConfigTestSuite) TestParseEmptyDocument() {
	cfg, err := config.Parse(strings.NewReader(""))
	s.Require().NoError(err)
	s.Equal(config.Default(), cfg)
}

func (s *ConfigTestSuite) TestParseRejectsUnknownKeys() {
	_, err := config.Parse(strings.NewReader("server:\n  prot: 1\n"))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{
			name:   "port out of range",
			mutate: func(c *config.Config) { c.Server.Port = 70000 },
			field:  "Server.Port",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.Server.LogLevel = "chatty" },
			field:  "Server.LogLevel",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Server.LogFormat = "xml" },
			field:  "Server.LogFormat",
		},
		{
			name: "redis enabled without endpoint",
			mutate: func(c *config.Config) {
				c.Redis.Enabled = true
				c.Redis.Endpoint = ""
			},
			field: "Redis.Endpoint",
		},
		{
			name:   "negative ttl",
			mutate: func(c *config.Config) { c.Redis.LevelTTL = -time.Second },
			field:  "Redis.LevelTTL",
		},
		{
			name:   "unknown default style",
			mutate: func(c *config.Config) { c.Generator.DefaultStyle = "space" },
			field:  "Generator",
		},
		{
			name:   "zero tile size",
			mutate: func(c *config.Config) { c.Generator.TileSize = 0 },
			field:  "Generator.TileSize",
		},
		{
			name:   "bad layout settings",
			mutate: func(c *config.Config) { c.Generator.Layout.MinWidth = 1 },
			field:  "Generator.Layout",
		},
		{
			name:   "ratio above one",
			mutate: func(c *config.Config) { c.Validator.MinPathSuccess = 1.5 },
			field:  "Validator",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := config.Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestLoad() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "levelgen.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("generator:\n  width: 50\n"), 0o600))

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(50, cfg.Generator.Width)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	s.Require().NoError(os.WriteFile(path, []byte("generator:\n  width: 0\n"), 0o600))
	_, err = config.Load(path)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}
