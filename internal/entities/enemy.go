package entities

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Enemy movement traits
const (
	TraitGround     = "ground"
	TraitFlying     = "flying"
	TraitAir        = "air"
	TraitAmphibious = "amphibious"
)

// EnemyProfile describes a hostile entity type
type EnemyProfile struct {
	Type        string
	Traits      []string
	Width       int
	Height      int
	VisionRange int
	Ranged      bool
}

// HasTrait reports whether the profile carries a trait
func (p EnemyProfile) HasTrait(trait string) bool {
	return slices.Contains(p.Traits, trait)
}

// SpawnLabel maps the profile to the zone label used by area rules
func (p EnemyProfile) SpawnLabel() string {
	switch {
	case p.HasTrait(TraitFlying) || p.HasTrait(TraitAir):
		return LabelEnemyFlying
	case p.HasTrait(TraitAmphibious):
		return LabelEnemyAmphibious
	default:
		return LabelEnemyGround
	}
}

var enemyProfiles = map[string]EnemyProfile{
	"Bug":          {Type: "Bug", Traits: []string{TraitGround, "small", "narrow"}, Width: 28, Height: 22, VisionRange: 200},
	"Boss":         {Type: "Boss", Traits: []string{TraitGround, "strong", "destructible"}, Width: 64, Height: 48, VisionRange: 300},
	"Frog":         {Type: "Frog", Traits: []string{TraitGround, TraitAmphibious}, Width: 28, Height: 22, VisionRange: 220},
	"Archer":       {Type: "Archer", Traits: []string{TraitGround}, Width: 28, Height: 22, VisionRange: 350, Ranged: true},
	"WizardCaster": {Type: "WizardCaster", Traits: []string{TraitGround, "floating"}, Width: 28, Height: 22, VisionRange: 280, Ranged: true},
	"Assassin":     {Type: "Assassin", Traits: []string{TraitGround, "small", "narrow", "jumping"}, Width: 28, Height: 22, VisionRange: 240},
	"Bee":          {Type: "Bee", Traits: []string{TraitFlying, TraitAir}, Width: 24, Height: 20, VisionRange: 240},
	"Golem":        {Type: "Golem", Traits: []string{TraitGround, "strong", "destructible", "fire_resistant"}, Width: 56, Height: 44, VisionRange: 500},
}

// LookupEnemyProfile returns the catalog entry for an enemy type
func LookupEnemyProfile(enemyType string) (EnemyProfile, bool) {
	p, ok := enemyProfiles[enemyType]
	return p, ok
}

// EnemyTypes lists the catalog in sorted order
func EnemyTypes() []string {
	out := make([]string, 0, len(enemyProfiles))
	for t := range enemyProfiles {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Enemy is a placed hostile entity; X/Y is the pixel centre of its tile
type Enemy struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// GetID implements core.Entity
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType implements core.Entity
func (e *Enemy) GetType() string {
	return e.Type
}

// Tile converts the pixel position back to tile space
func (e *Enemy) Tile(tileSize int) Point {
	return Point{X: floorDiv(e.X, tileSize), Y: floorDiv(e.Y, tileSize)}
}

// Footprint returns the pixel rectangle occupied by the enemy, centred on X/Y
func (e *Enemy) Footprint() Rect {
	p, ok := LookupEnemyProfile(e.Type)
	if !ok {
		p = enemyProfiles["Bug"]
	}
	return Rect{X: e.X - p.Width/2, Y: e.Y - p.Height/2, Width: p.Width, Height: p.Height}
}

// NewEnemyAt places an enemy at the centre of a tile
func NewEnemyAt(id, enemyType string, tile Point, tileSize int) *Enemy {
	return &Enemy{
		ID:   id,
		Type: enemyType,
		X:    tile.X*tileSize + tileSize/2,
		Y:    tile.Y*tileSize + tileSize/2,
	}
}

func floorDiv(v, d int) int {
	q := v / d
	if (v%d != 0) && ((v < 0) != (d < 0)) {
		q--
	}
	return q
}

var _ core.Entity = (*Enemy)(nil)
