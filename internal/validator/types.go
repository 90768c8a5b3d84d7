package validator

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

// Scope selects which stages a validation pass runs
type Scope string

const (
	// ScopeFull runs every stage
	ScopeFull Scope = "full"
	// ScopeStructure skips the objective and hostile-entity stages, which
	// only make sense once entities have been placed
	ScopeStructure Scope = "structure"
)

// Stage names recorded in Metrics.Stages
const (
	StageExtract         = "extract_level_data"
	StageStructureFailed = "basic_structure_failed"
	StageStructurePassed = "basic_structure_passed"
	StageEnhanced        = "enhanced_structure"
	StageGameplay        = "gameplay_validation"
	StageAreas           = "area_validation"
	StageEntities        = "entity_validation"
	StagePortal          = "portal_reachability"
	StageEnemies         = "enemy_reachability"
	StagePerformance     = "performance_validation"
)

// LevelData is the validation input. Tile-space fields are indexed like the
// grid; ObjectivePos and Enemies are in pixels.
type LevelData struct {
	Grid        entities.Grid     `json:"grid"`
	TerrainGrid [][]string        `json:"terrain_grid,omitempty"`
	Rooms       []*entities.Room  `json:"rooms,omitempty"`
	SpawnPoints []entities.Point  `json:"spawn_points,omitempty"`
	Areas       *entities.AreaMap `json:"areas,omitempty"`

	ObjectivePos   *entities.Point        `json:"portal_pos,omitempty"`
	Enemies        []*entities.Enemy      `json:"enemies,omitempty"`
	EnemySpawns    []entities.EntitySpawn `json:"enemy_spawns,omitempty"`
	MerchantSpawns []entities.Point       `json:"merchant_spawns,omitempty"`

	Style string `json:"type,omitempty"`

	// Roller drives the random choices of repair. Nil falls back to a
	// stream seeded from the grid contents.
	Roller dice.Roller `json:"-"`
}

// Clone deep copies everything repair may touch
func (d *LevelData) Clone() *LevelData {
	if d == nil {
		return nil
	}
	out := *d
	out.Grid = d.Grid.Clone()
	if d.TerrainGrid != nil {
		out.TerrainGrid = make([][]string, len(d.TerrainGrid))
		for y, row := range d.TerrainGrid {
			out.TerrainGrid[y] = append([]string(nil), row...)
		}
	}
	out.Rooms = entities.CloneRooms(d.Rooms)
	out.SpawnPoints = append([]entities.Point(nil), d.SpawnPoints...)
	out.Areas = d.Areas.Clone()
	if d.ObjectivePos != nil {
		p := *d.ObjectivePos
		out.ObjectivePos = &p
	}
	if d.Enemies != nil {
		out.Enemies = make([]*entities.Enemy, len(d.Enemies))
		for i, e := range d.Enemies {
			cp := *e
			out.Enemies[i] = &cp
		}
	}
	out.EnemySpawns = append([]entities.EntitySpawn(nil), d.EnemySpawns...)
	out.MerchantSpawns = append([]entities.Point(nil), d.MerchantSpawns...)
	return &out
}

// Metrics are the measurements of one validation pass
type Metrics struct {
	ValidationTime    time.Duration `json:"validation_time"`
	ConnectivityRatio float64       `json:"connectivity_ratio"`
	FloorRatio        float64       `json:"floor_ratio"`
	WallRatio         float64       `json:"wall_ratio"`
	IsolatedRatio     float64       `json:"isolated_ratio"`
	PathSuccessRate   float64       `json:"path_success_rate"`
	ComplexityScore   float64       `json:"complexity_score"`
	MemoryMB          float64       `json:"memory_mb"`
	RepairAttempts    int           `json:"repair_attempts"`
	Components        int           `json:"components"`
	Chokepoints       int           `json:"chokepoints"`
	CombatAreas       int           `json:"combat_areas"`
	Stages            []string      `json:"stages"`
}

// EntitySpawnCheck is the per-enemy verdict of the entity stage. Enemies
// off the floor or out of bounds are recorded with OnFloor false and no
// further checks.
type EntitySpawnCheck struct {
	Index             int            `json:"index"`
	Type              string         `json:"type"`
	Tile              entities.Point `json:"tile"`
	OnFloor           bool           `json:"on_floor"`
	TerrainCompatible bool           `json:"terrain_compatible"`
	Hazardous         bool           `json:"hazardous"`
	Reachable         bool           `json:"reachable"`
	LineOfSight       bool           `json:"line_of_sight"`
}

// Result is the outcome of one validation pass. Every call builds a new one.
type Result struct {
	IsValid       bool               `json:"is_valid"`
	Message       string             `json:"message"`
	Issues        []string           `json:"issues"`
	Metrics       Metrics            `json:"metrics"`
	Suggestions   []string           `json:"suggestions,omitempty"`
	EntitySpawns  []EntitySpawnCheck `json:"entity_spawns,omitempty"`
	RepairHistory []string           `json:"repair_history,omitempty"`
	Scope         Scope              `json:"scope"`
}
