// Package validator checks generated levels against structural and gameplay
// invariants and applies bounded, best-effort repairs.
package validator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

const (
	defaultStyle  = entities.StyleDungeon
	messageValid  = "Level is fully playable"
	messageFailed = "Validation failed"
	maxSummarized = 5
)

// Validator holds configuration only; every call works on its own state,
// so one Validator can serve concurrent requests.
type Validator struct {
	terrains   *terrain.Registry
	areas      *areas.Registry
	thresholds Thresholds
	tileSize   int
}

// New creates a validator with the provided dependencies
func New(cfg *Config) (*Validator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	v := &Validator{
		terrains:   cfg.TerrainRegistry,
		areas:      cfg.AreaRegistry,
		thresholds: DefaultThresholds(),
		tileSize:   cfg.TileSize,
	}
	if cfg.Thresholds != nil {
		v.thresholds = *cfg.Thresholds
	}
	if v.tileSize == 0 {
		v.tileSize = DefaultTileSize
	}
	return v, nil
}

// Thresholds returns the limits in use
func (v *Validator) Thresholds() Thresholds {
	return v.thresholds
}

// TileSize returns the pixel size used to map pixel positions to tiles
func (v *Validator) TileSize() int {
	return v.tileSize
}

// Validate runs every stage against the data
func (v *Validator) Validate(data *LevelData) *Result {
	return v.validate(data, ScopeFull)
}

// ValidateStructure runs the stages that do not depend on placed entities
func (v *Validator) ValidateStructure(data *LevelData) *Result {
	return v.validate(data, ScopeStructure)
}

// pass is the transient state of one validation call
type pass struct {
	data    *LevelData
	scope   Scope
	issues  []string
	metrics Metrics
	spawns  []EntitySpawnCheck
}

func (p *pass) add(issues ...string) {
	p.issues = append(p.issues, issues...)
}

func (p *pass) stage(name string, before int) {
	p.metrics.Stages = append(p.metrics.Stages, name)
	slog.Debug("Validation stage complete", "stage", name, "issues", len(p.issues)-before)
}

func (v *Validator) validate(data *LevelData, scope Scope) *Result {
	start := time.Now()
	if data == nil {
		data = &LevelData{}
	}
	p := &pass{data: data, scope: scope}
	p.stage(StageExtract, 0)

	if issues := basicStructure(data.Grid); len(issues) > 0 {
		p.add(issues...)
		p.stage(StageStructureFailed, 0)
		return v.finish(p, start)
	}
	p.stage(StageStructurePassed, 0)

	n := len(p.issues)
	v.checkBoundaries(p)
	v.checkConnectivity(p)
	v.checkRooms(p)
	v.checkPaths(p)
	p.stage(StageEnhanced, n)

	n = len(p.issues)
	v.checkSpawnPoints(p)
	v.checkCombatSpace(p)
	v.checkTerrain(p)
	p.stage(StageGameplay, n)

	if len(data.TerrainGrid) > 0 && data.Areas.Len() > 0 {
		n = len(p.issues)
		v.checkAreas(p)
		p.stage(StageAreas, n)
	}

	if scope == ScopeFull {
		n = len(p.issues)
		v.checkEntities(p)
		p.stage(StageEntities, n)

		n = len(p.issues)
		v.checkObjective(p)
		p.stage(StagePortal, n)

		n = len(p.issues)
		v.checkEnemyReachability(p)
		p.stage(StageEnemies, n)
	}

	n = len(p.issues)
	v.checkPerformance(p)
	p.stage(StagePerformance, n)

	v.finalMetrics(p)
	return v.finish(p, start)
}

func (v *Validator) finish(p *pass, start time.Time) *Result {
	style := p.data.Style
	if style == "" {
		style = defaultStyle
	}

	result := &Result{
		IsValid:      len(p.issues) == 0,
		Issues:       p.issues,
		Metrics:      p.metrics,
		Suggestions:  Suggestions(p.issues, style),
		EntitySpawns: p.spawns,
		Scope:        p.scope,
	}
	if result.Issues == nil {
		result.Issues = []string{}
	}
	if result.IsValid {
		result.Message = messageValid
	} else {
		shown := result.Issues[:min(maxSummarized, len(result.Issues))]
		result.Message = fmt.Sprintf("%s: %s", messageFailed, strings.Join(shown, "; "))
	}
	result.Metrics.ValidationTime = time.Since(start)

	slog.Debug("Level validated",
		"scope", p.scope,
		"valid", result.IsValid,
		"issues", len(result.Issues),
		"duration", result.Metrics.ValidationTime)

	return result
}

// basicStructure is the only fatal stage: an empty or ragged grid stops validation
func basicStructure(grid entities.Grid) []string {
	if len(grid) == 0 {
		return []string{"No grid data found"}
	}
	if len(grid[0]) == 0 {
		return []string{"Empty grid dimensions"}
	}

	var issues []string
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			issues = append(issues, fmt.Sprintf("Inconsistent grid row length at row %d", y))
		}
	}
	return issues
}

func (v *Validator) toTile(px entities.Point) entities.Point {
	return entities.Point{X: floorDiv(px.X, v.tileSize), Y: floorDiv(px.Y, v.tileSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
