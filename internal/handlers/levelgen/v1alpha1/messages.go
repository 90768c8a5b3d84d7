package v1alpha1

import (
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// GenerateLevelRequest asks for one level of a world
type GenerateLevelRequest struct {
	WorldSeed    int64   `json:"world_seed"`
	LevelIndex   int     `json:"level_index"`
	Style        string  `json:"style,omitempty"`
	Difficulty   int     `json:"difficulty,omitempty"`
	SeedOverride *uint64 `json:"seed_override,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
}

// GenerateLevelResponse carries the stored level
type GenerateLevelResponse struct {
	Level         *entities.Level `json:"level"`
	RepairHistory []string        `json:"repair_history,omitempty"`
}

// GetLevelRequest identifies a stored level
type GetLevelRequest struct {
	LevelID string `json:"level_id"`
}

// GetLevelResponse carries a stored level
type GetLevelResponse struct {
	Level *entities.Level `json:"level"`
}

// ListLevelsRequest selects the levels of one world
type ListLevelsRequest struct {
	WorldSeed int64 `json:"world_seed"`
}

// ListLevelsResponse carries the levels of a world ordered by index
type ListLevelsResponse struct {
	Levels []*entities.Level `json:"levels"`
}

// ValidateLevelRequest validates either a stored level (LevelID) or caller
// supplied data. Exactly one of them must be set.
type ValidateLevelRequest struct {
	LevelID string               `json:"level_id,omitempty"`
	Data    *validator.LevelData `json:"data,omitempty"`
	Repair  bool                 `json:"repair,omitempty"`
}

// ValidateLevelResponse carries the verdict and any repaired data
type ValidateLevelResponse struct {
	Result         *validator.Result    `json:"result"`
	RepairedData   *validator.LevelData `json:"repaired_data,omitempty"`
	RepairedResult *validator.Result    `json:"repaired_result,omitempty"`
}
