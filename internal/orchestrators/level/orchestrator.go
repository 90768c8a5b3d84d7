// Package level implements the level generation orchestrator: it drives the
// raw layout producer through difficulty, structural validation and repair,
// then assigns terrain, stamps zones, places the objective and hostiles and
// stores the finished level.
package level

//go:generate mockgen -destination=mock/mock_service.go -package=levelmock github.com/KirkDiggler/rpg-levelgen/internal/orchestrators/level Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels"
	"github.com/KirkDiggler/rpg-levelgen/internal/services/layout"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// Service defines the level generation operations
type Service interface {
	GenerateLevel(ctx context.Context, input *GenerateLevelInput) (*GenerateLevelOutput, error)
	GetLevel(ctx context.Context, input *GetLevelInput) (*GetLevelOutput, error)
	ListLevels(ctx context.Context, input *ListLevelsInput) (*ListLevelsOutput, error)
	ValidateLevel(ctx context.Context, input *ValidateLevelInput) (*ValidateLevelOutput, error)
}

// Settings are the generation defaults and bounds
type Settings struct {
	Width              int    `yaml:"width" json:"width"`
	Height             int    `yaml:"height" json:"height"`
	MaxWidth           int    `yaml:"max_width" json:"max_width"`
	MaxHeight          int    `yaml:"max_height" json:"max_height"`
	ValidationAttempts int    `yaml:"validation_attempts" json:"validation_attempts"`
	DefaultStyle       string `yaml:"default_style" json:"default_style"`
}

// DefaultSettings returns a 40x30 dungeon with three validation attempts
func DefaultSettings() Settings {
	return Settings{
		Width:              40,
		Height:             30,
		MaxWidth:           200,
		MaxHeight:          200,
		ValidationAttempts: 3,
		DefaultStyle:       entities.StyleDungeon,
	}
}

// Validate checks the generation defaults
func (s *Settings) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("MaxWidth", s.MaxWidth, vb)
	errors.ValidatePositive("MaxHeight", s.MaxHeight, vb)
	errors.ValidateRange("Width", s.Width, 1, max(1, s.MaxWidth), vb)
	errors.ValidateRange("Height", s.Height, 1, max(1, s.MaxHeight), vb)
	errors.ValidatePositive("ValidationAttempts", s.ValidationAttempts, vb)
	errors.ValidateEnum("DefaultStyle", s.DefaultStyle, entities.Styles(), vb)

	return vb.Build()
}

// Config holds the dependencies for the level orchestrator
type Config struct {
	Producer        layout.Producer
	TerrainRegistry *terrain.Registry
	AreaRegistry    *areas.Registry
	Validator       *validator.Validator
	LevelRepo       levels.Repository
	IDGenerator     idgen.Generator
	Clock           clock.Clock     // defaults to the system clock
	EventBus        events.EventBus // optional
	Settings        *Settings       // defaults to DefaultSettings
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Producer == nil {
		vb.RequiredField("Producer")
	}
	if c.TerrainRegistry == nil {
		vb.RequiredField("TerrainRegistry")
	}
	if c.AreaRegistry == nil {
		vb.RequiredField("AreaRegistry")
	}
	if c.Validator == nil {
		vb.RequiredField("Validator")
	}
	if c.LevelRepo == nil {
		vb.RequiredField("LevelRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Settings != nil {
		if err := c.Settings.Validate(); err != nil {
			vb.Field("Settings", errors.GetMessage(err))
		}
	}

	return vb.Build()
}

type orchestrator struct {
	producer  layout.Producer
	terrains  *terrain.Registry
	areas     *areas.Registry
	validator *validator.Validator
	levelRepo levels.Repository
	idGen     idgen.Generator
	clock     clock.Clock
	eventBus  events.EventBus
	settings  Settings
}

// NewOrchestrator creates a new level orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	settings := DefaultSettings()
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		producer:  cfg.Producer,
		terrains:  cfg.TerrainRegistry,
		areas:     cfg.AreaRegistry,
		validator: cfg.Validator,
		levelRepo: cfg.LevelRepo,
		idGen:     cfg.IDGenerator,
		clock:     c,
		eventBus:  cfg.EventBus,
		settings:  settings,
	}, nil
}

var _ Service = (*orchestrator)(nil)

// request is a GenerateLevelInput with defaults applied
type request struct {
	worldSeed  int64
	levelIndex int
	seed       uint64
	style      string
	difficulty int
	width      int
	height     int
}

func (o *orchestrator) resolve(input *GenerateLevelInput) (*request, error) {
	req := &request{
		worldSeed:  input.WorldSeed,
		levelIndex: input.LevelIndex,
		style:      input.Style,
		difficulty: input.Difficulty,
		width:      input.Width,
		height:     input.Height,
	}
	if req.style == "" {
		req.style = o.settings.DefaultStyle
	}
	if req.difficulty == 0 {
		req.difficulty = entities.DifficultyNormal
	}
	if req.width == 0 {
		req.width = o.settings.Width
	}
	if req.height == 0 {
		req.height = o.settings.Height
	}

	vb := errors.NewValidationBuilder()
	if req.levelIndex < 0 {
		vb.Field("LevelIndex", "must not be negative")
	}
	errors.ValidateEnum("Style", req.style, entities.Styles(), vb)
	errors.ValidateRange("Difficulty", req.difficulty, entities.DifficultyEasy, entities.DifficultyHard, vb)
	errors.ValidateRange("Width", req.width, 1, o.settings.MaxWidth, vb)
	errors.ValidateRange("Height", req.height, 1, o.settings.MaxHeight, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if input.SeedOverride != nil {
		req.seed = *input.SeedOverride
	} else {
		req.seed = rng.LevelSeed(req.worldSeed, req.levelIndex)
	}
	return req, nil
}

// GenerateLevel runs one generation request end to end and stores the result
func (o *orchestrator) GenerateLevel(ctx context.Context, input *GenerateLevelInput) (*GenerateLevelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	req, err := o.resolve(input)
	if err != nil {
		return nil, err
	}

	level, history, err := o.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	level.ID = o.idGen.Generate()
	level.CreatedAt = o.clock.Now()

	if _, err := o.levelRepo.Create(ctx, levels.CreateInput{Level: level}); err != nil {
		return nil, errors.Wrapf(err, "failed to store level")
	}

	o.publish(ctx, EventLevelGenerated, level)
	if len(history) > 0 {
		o.publish(ctx, EventLevelRepaired, level)
	}

	slog.Info("Level generated",
		"level_id", level.ID,
		"world_seed", level.WorldSeed,
		"level_index", level.LevelIndex,
		"seed", level.Seed,
		"style", level.Style,
		"difficulty", level.Difficulty,
		"enemies", len(level.Enemies),
		"validation_attempts", level.Report.ValidationAttempts,
		"repair_attempts", level.Report.RepairAttempts)
	if !level.Report.Valid {
		slog.Warn("Level shipped with remaining issues",
			"level_id", level.ID,
			"issues", level.Report.Issues)
	}

	return &GenerateLevelOutput{Level: level, RepairHistory: history}, nil
}

// generate builds an unsaved level
func (o *orchestrator) generate(ctx context.Context, req *request) (*entities.Level, []string, error) {
	streams := rng.NewStreams(req.seed)

	built, err := o.buildStructure(ctx, req, streams)
	if err != nil {
		return nil, nil, err
	}

	data := built.data
	sealBoundary(data.Grid)

	spawn, err := chooseSpawn(data.Grid, data.SpawnPoints)
	if err != nil {
		return nil, nil, err
	}
	data.SpawnPoints = spawnFirst(data.Grid, spawn, data.SpawnPoints)
	syncPlayerSpawn(data.Rooms, spawn)

	data.TerrainGrid = assignTerrain(data.Grid, req.style, spawn, streams.Terrain)
	data.Areas = o.stampZones(data, spawn)

	tileSize := o.validator.TileSize()
	objective := placeObjective(data.Grid, data.Areas, spawn)
	if objective != nil {
		px := entities.Point{X: objective.X * tileSize, Y: objective.Y * tileSize}
		data.ObjectivePos = &px
	}
	data.Enemies = o.placeEnemies(&placement{
		grid:       data.Grid,
		terrain:    data.TerrainGrid,
		areas:      data.Areas,
		spawn:      spawn,
		objective:  objective,
		difficulty: req.difficulty,
		tileSize:   tileSize,
		roller:     streams.Entities,
	})

	level := o.assemble(req, data, spawn)

	final := o.validator.Validate(LevelData(level))
	level.Report = &entities.LevelReport{
		Valid:              final.IsValid,
		Issues:             final.Issues,
		ValidationAttempts: built.attempts,
		RepairAttempts:     built.repairs,
	}

	return level, built.history, nil
}

// structure is the outcome of the validate/repair loop
type structure struct {
	data     *validator.LevelData
	result   *validator.Result
	attempts int
	repairs  int
	history  []string
}

// buildStructure produces one raw layout, applies difficulty and then runs
// validate/repair rounds on that same layout. Each round repairs the best
// snapshot so far; the loop ends when the layout is valid, when a round
// changes nothing or after the configured number of attempts.
func (o *orchestrator) buildStructure(ctx context.Context, req *request, streams *rng.Streams) (*structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(err, "generation cancelled")
	}

	out, err := o.producer.Produce(ctx, &layout.ProduceInput{
		Width:  req.width,
		Height: req.height,
		Style:  req.style,
		Roller: streams.Layout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to produce layout")
	}
	applyDifficulty(out.Grid, req.difficulty, streams.Terrain)

	data := &validator.LevelData{
		Grid:        out.Grid,
		Rooms:       out.Rooms,
		SpawnPoints: out.SpawnPoints,
		Style:       req.style,
		Roller:      streams.Repair,
	}
	built := &structure{data: data, result: o.validator.ValidateStructure(data)}

	for built.attempts < o.settings.ValidationAttempts {
		if err := ctx.Err(); err != nil {
			return nil, errors.FromContext(err, "generation cancelled")
		}
		built.attempts++
		if built.result.IsValid {
			break
		}

		repaired, result := o.validator.Repair(built.data, built.result)
		built.repairs += result.Metrics.RepairAttempts
		built.history = append(built.history, result.RepairHistory...)
		if result.IsValid || len(result.Issues) < len(built.result.Issues) {
			built.data, built.result = repaired, result
		}

		if len(result.RepairHistory) == 0 {
			slog.Debug("Repair changed nothing",
				"attempt", built.attempts,
				"issues", len(built.result.Issues))
			break
		}
	}

	return built, nil
}

// GetLevel returns a stored level
func (o *orchestrator) GetLevel(ctx context.Context, input *GetLevelInput) (*GetLevelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LevelID == "" {
		return nil, errors.InvalidArgument("level ID is required")
	}

	out, err := o.levelRepo.Get(ctx, levels.GetInput{ID: input.LevelID})
	if err != nil {
		return nil, err
	}
	return &GetLevelOutput{Level: out.Level}, nil
}

// ListLevels returns the stored levels of one world
func (o *orchestrator) ListLevels(ctx context.Context, input *ListLevelsInput) (*ListLevelsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.levelRepo.ListByWorld(ctx, levels.ListByWorldInput{WorldSeed: input.WorldSeed})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list levels")
	}
	return &ListLevelsOutput{Levels: out.Levels}, nil
}

// ValidateLevel validates caller supplied data and optionally repairs it
func (o *orchestrator) ValidateLevel(_ context.Context, input *ValidateLevelInput) (*ValidateLevelOutput, error) {
	if input == nil || input.Data == nil {
		return nil, errors.InvalidArgument("level data is required")
	}

	result := o.validator.Validate(input.Data)
	out := &ValidateLevelOutput{Result: result}
	if input.Repair && !result.IsValid {
		out.RepairedData, out.RepairedResult = o.validator.Repair(input.Data, result)
	}
	return out, nil
}
