package main

import (
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/config"
	"github.com/KirkDiggler/rpg-levelgen/internal/orchestrators/level"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels"
	"github.com/KirkDiggler/rpg-levelgen/internal/services/layout"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

var configPath string

// loadConfig reads --config when set, otherwise the defaults
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// installLogger makes slog write in the configured format and level
func installLogger(cfg config.ServerConfig) error {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// engine is the generation stack shared by the server and generate commands
type engine struct {
	terrains *terrain.Registry
	service  level.Service
}

func newEngine(cfg *config.Config, repo levels.Repository, bus events.EventBus) (*engine, error) {
	terrains := terrain.NewDefaultRegistry()
	areaReg := areas.NewDefaultRegistry(terrains)

	thresholds := cfg.Validator
	v, err := validator.New(&validator.Config{
		TerrainRegistry: terrains,
		AreaRegistry:    areaReg,
		Thresholds:      &thresholds,
		TileSize:        cfg.Generator.TileSize,
	})
	if err != nil {
		return nil, err
	}

	layoutCfg := cfg.Generator.Layout
	producer, err := layout.NewProducer(&layoutCfg)
	if err != nil {
		return nil, err
	}

	settings := cfg.Generator.Settings
	svc, err := level.NewOrchestrator(&level.Config{
		Producer:        producer,
		TerrainRegistry: terrains,
		AreaRegistry:    areaReg,
		Validator:       v,
		LevelRepo:       repo,
		IDGenerator:     idgen.NewUUID("level"),
		Clock:           clock.New(),
		EventBus:        bus,
		Settings:        &settings,
	})
	if err != nil {
		return nil, err
	}

	return &engine{terrains: terrains, service: svc}, nil
}
