package level

import (
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// GenerateLevelInput contains the generation request
type GenerateLevelInput struct {
	WorldSeed  int64  `json:"world_seed"`
	LevelIndex int    `json:"level_index"`
	Style      string `json:"style,omitempty"`      // empty uses the configured default
	Difficulty int    `json:"difficulty,omitempty"` // 1-3, zero means normal
	// SeedOverride replaces the seed derived from WorldSeed and LevelIndex
	SeedOverride *uint64 `json:"seed_override,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
}

// GenerateLevelOutput contains the stored level
type GenerateLevelOutput struct {
	Level *entities.Level `json:"level"`
	// RepairHistory lists every fix applied while the layout was validated
	RepairHistory []string `json:"repair_history,omitempty"`
}

// GetLevelInput identifies a stored level
type GetLevelInput struct {
	LevelID string `json:"level_id"`
}

// GetLevelOutput contains a stored level
type GetLevelOutput struct {
	Level *entities.Level `json:"level"`
}

// ListLevelsInput selects the stored levels of one world
type ListLevelsInput struct {
	WorldSeed int64 `json:"world_seed"`
}

// ListLevelsOutput contains the levels of a world, ordered by level index
type ListLevelsOutput struct {
	Levels []*entities.Level `json:"levels"`
}

// ValidateLevelInput carries caller supplied level data
type ValidateLevelInput struct {
	Data *validator.LevelData `json:"data"`
	// Repair runs the repair engine when the data is not valid
	Repair bool `json:"repair,omitempty"`
}

// ValidateLevelOutput contains the validation verdict and, when requested, the repaired data
type ValidateLevelOutput struct {
	Result         *validator.Result    `json:"result"`
	RepairedData   *validator.LevelData `json:"repaired_data,omitempty"`
	RepairedResult *validator.Result    `json:"repaired_result,omitempty"`
}
