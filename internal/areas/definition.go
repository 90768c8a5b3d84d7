// Package areas implements the zone-type registry: declarative constraints for
// rectangular zones, validation of zone instances against level terrain, and
// helpers that stamp the default zones onto a generated level.
package areas

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// Size is a width x height pair in tiles
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TerrainLookup resolves the terrain tag under a tile
type TerrainLookup func(x, y int) (terrain.Tag, error)

// Context carries the level state zone rules inspect
type Context struct {
	// Spawns lists every labelled spawn in tile coordinates
	Spawns []entities.EntitySpawn
}

// SpawnsIn returns the spawns inside an area, in context order
func (c *Context) SpawnsIn(area *entities.Area) []entities.EntitySpawn {
	if c == nil {
		return nil
	}
	var out []entities.EntitySpawn
	for _, sp := range c.Spawns {
		if area.Contains(sp.X, sp.Y) {
			out = append(out, sp)
		}
	}
	return out
}

// Rule is an extra validation step attached to a zone type
type Rule interface {
	Name() string
	Evaluate(ctx *Context, area *entities.Area, lookup TerrainLookup) ([]string, error)
}

// RuleFunc adapts a function to the Rule interface
type RuleFunc struct {
	RuleName string
	Fn       func(ctx *Context, area *entities.Area, lookup TerrainLookup) ([]string, error)
}

// Name implements Rule
func (f RuleFunc) Name() string {
	return f.RuleName
}

// Evaluate implements Rule
func (f RuleFunc) Evaluate(ctx *Context, area *entities.Area, lookup TerrainLookup) ([]string, error) {
	return f.Fn(ctx, area, lookup)
}

// TypeDefinition is the declarative constraint record of a zone type
type TypeDefinition struct {
	Name    string
	MinSize Size
	// MaxSize nil means unbounded
	MaxSize *Size
	// RequiredBases empty means any terrain is acceptable
	RequiredBases   []terrain.Base
	AllowedSpawns   []string
	ForbiddenSpawns []string
	Rules           []Rule
}

// Forbids reports whether a spawn label may not appear inside the zone
func (d *TypeDefinition) Forbids(label string) bool {
	return slices.Contains(d.ForbiddenSpawns, label)
}

// Allows reports whether the zone explicitly permits a label.
// Zones without an allow list permit anything not forbidden.
func (d *TypeDefinition) Allows(label string) bool {
	if d.Forbids(label) {
		return false
	}
	return len(d.AllowedSpawns) == 0 || slices.Contains(d.AllowedSpawns, label)
}

func (d *TypeDefinition) requiresBase(b terrain.Base) bool {
	return slices.Contains(d.RequiredBases, b)
}

func (d *TypeDefinition) requiredBasesString() string {
	parts := make([]string, len(d.RequiredBases))
	for i, b := range d.RequiredBases {
		parts[i] = string(b)
	}
	return strings.Join(parts, "/")
}
