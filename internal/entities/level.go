package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Level styles accepted by the generator
const (
	StyleDungeon = "dungeon"
	StyleCave    = "cave"
	StyleOutdoor = "outdoor"
	StyleHybrid  = "hybrid"
)

// Styles lists the supported level styles
func Styles() []string {
	return []string{StyleDungeon, StyleCave, StyleOutdoor, StyleHybrid}
}

// Difficulty tiers
const (
	DifficultyEasy   = 1
	DifficultyNormal = 2
	DifficultyHard   = 3
)

// EntityTypeLevel is the core.Entity type of a generated level
const EntityTypeLevel = "level"

// LevelReport summarises the final validation of a generated level
type LevelReport struct {
	Valid              bool     `json:"valid"`
	Issues             []string `json:"issues,omitempty"`
	ValidationAttempts int      `json:"validation_attempts"`
	RepairAttempts     int      `json:"repair_attempts"`
}

// Level is the finished, immutable product of one generation run.
// Tile-space fields (Grid, TerrainGrid, Areas, Rooms, SpawnPoints) and
// pixel-space fields (Solids, Enemies, Doors, Start, Objective) are
// related by TileSize only.
type Level struct {
	ID         string `json:"id"`
	WorldSeed  int64  `json:"world_seed"`
	LevelIndex int    `json:"level_index"`
	Seed       uint64 `json:"seed"`
	Style      string `json:"style"`
	Difficulty int    `json:"difficulty"`

	Grid        Grid       `json:"grid"`
	TerrainGrid [][]string `json:"terrain_grid"`
	Areas       *AreaMap   `json:"areas"`
	Rooms       []*Room    `json:"rooms,omitempty"`
	SpawnPoints []Point    `json:"spawn_points,omitempty"`

	Solids    []Rect   `json:"solids"`
	Enemies   []*Enemy `json:"enemies"`
	Doors     []Rect   `json:"doors"`
	Start     Point    `json:"start"`
	Objective *Point   `json:"objective,omitempty"`

	// MerchantSpawns are tile positions; generated levels carry none
	MerchantSpawns []Point `json:"merchant_spawns,omitempty"`

	TileSize    int  `json:"tile_size"`
	PixelWidth  int  `json:"pixel_width"`
	PixelHeight int  `json:"pixel_height"`
	Procedural  bool `json:"procedural"`

	Report    *LevelReport `json:"report,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// GetID implements core.Entity
func (l *Level) GetID() string {
	return l.ID
}

// GetType implements core.Entity
func (l *Level) GetType() string {
	return EntityTypeLevel
}

var _ core.Entity = (*Level)(nil)
