package validator

import (
	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// DefaultTileSize is the pixel edge of one tile
const DefaultTileSize = 24

// Thresholds are the tunable limits of validation and repair
type Thresholds struct {
	MinSpawnPoints          int     `yaml:"min_spawn_points" json:"min_spawn_points"`
	MinConnectivityRatio    float64 `yaml:"min_connectivity_ratio" json:"min_connectivity_ratio"`
	MinRoomSize             int     `yaml:"min_room_size" json:"min_room_size"`
	SmallComponentSize      int     `yaml:"small_component_size" json:"small_component_size"`
	SmallComponentRatio     float64 `yaml:"small_component_ratio" json:"small_component_ratio"`
	PathSamples             int     `yaml:"path_samples" json:"path_samples"`
	MinPathSuccess          float64 `yaml:"min_path_success" json:"min_path_success"`
	BoxedInWalls            int     `yaml:"boxed_in_walls" json:"boxed_in_walls"`
	MinCombatAreas          int     `yaml:"min_combat_areas" json:"min_combat_areas"`
	CombatAreaSize          int     `yaml:"combat_area_size" json:"combat_area_size"`
	OpenSpaceScore          int     `yaml:"open_space_score" json:"open_space_score"`
	MaxComplexity           float64 `yaml:"max_complexity" json:"max_complexity"`
	ReferenceWidth          int     `yaml:"reference_width" json:"reference_width"`
	ReferenceHeight         int     `yaml:"reference_height" json:"reference_height"`
	MaxMemoryMB             float64 `yaml:"max_memory_mb" json:"max_memory_mb"`
	RepairAttempts          int     `yaml:"repair_attempts" json:"repair_attempts"`
	BoundaryRepairThreshold int     `yaml:"boundary_repair_threshold" json:"boundary_repair_threshold"`
	BoundaryExits           int     `yaml:"boundary_exits" json:"boundary_exits"`
}

// DefaultThresholds returns the stock limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSpawnPoints:          1,
		MinConnectivityRatio:    0.7,
		MinRoomSize:             3,
		SmallComponentSize:      5,
		SmallComponentRatio:     0.1,
		PathSamples:             10,
		MinPathSuccess:          0.8,
		BoxedInWalls:            6,
		MinCombatAreas:          2,
		CombatAreaSize:          9,
		OpenSpaceScore:          4,
		MaxComplexity:           0.8,
		ReferenceWidth:          40,
		ReferenceHeight:         30,
		MaxMemoryMB:             10,
		RepairAttempts:          3,
		BoundaryRepairThreshold: 4,
		BoundaryExits:           2,
	}
}

// Validate checks that every threshold is usable
func (t *Thresholds) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("MinSpawnPoints", t.MinSpawnPoints, vb)
	errors.ValidateRatio("MinConnectivityRatio", t.MinConnectivityRatio, vb)
	errors.ValidatePositive("MinRoomSize", t.MinRoomSize, vb)
	errors.ValidatePositive("SmallComponentSize", t.SmallComponentSize, vb)
	errors.ValidateRatio("SmallComponentRatio", t.SmallComponentRatio, vb)
	errors.ValidatePositive("PathSamples", t.PathSamples, vb)
	errors.ValidateRatio("MinPathSuccess", t.MinPathSuccess, vb)
	errors.ValidateRange("BoxedInWalls", t.BoxedInWalls, 1, 8, vb)
	if t.MinCombatAreas < 0 {
		vb.Field("MinCombatAreas", "must not be negative")
	}
	errors.ValidatePositive("CombatAreaSize", t.CombatAreaSize, vb)
	errors.ValidateRange("OpenSpaceScore", t.OpenSpaceScore, 0, 24, vb)
	if t.MaxComplexity <= 0 {
		vb.Field("MaxComplexity", "must be positive")
	}
	errors.ValidatePositive("ReferenceWidth", t.ReferenceWidth, vb)
	errors.ValidatePositive("ReferenceHeight", t.ReferenceHeight, vb)
	if t.MaxMemoryMB <= 0 {
		vb.Field("MaxMemoryMB", "must be positive")
	}
	errors.ValidateRange("RepairAttempts", t.RepairAttempts, 0, 100, vb)
	if t.BoundaryRepairThreshold < 0 {
		vb.Field("BoundaryRepairThreshold", "must not be negative")
	}
	if t.BoundaryExits < 0 {
		vb.Field("BoundaryExits", "must not be negative")
	}

	return vb.Build()
}

// Config holds the dependencies of a Validator
type Config struct {
	TerrainRegistry *terrain.Registry
	AreaRegistry    *areas.Registry
	// Thresholds nil means DefaultThresholds
	Thresholds *Thresholds
	// TileSize zero means DefaultTileSize
	TileSize int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.TerrainRegistry == nil {
		vb.RequiredField("TerrainRegistry")
	}
	if c.AreaRegistry == nil {
		vb.RequiredField("AreaRegistry")
	}
	if c.TileSize < 0 {
		vb.Field("TileSize", "must not be negative")
	}
	if c.Thresholds != nil {
		if err := c.Thresholds.Validate(); err != nil {
			vb.Fieldf("Thresholds", "%v", err)
		}
	}

	return vb.Build()
}
