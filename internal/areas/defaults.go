package areas

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// Default zone type names
const (
	TypePlayerStart     = "player-start"
	TypeObjectiveZone   = "objective-zone"
	TypeGroundEnemyZone = "ground-enemy-zone"
	TypeFlyingEnemyZone = "flying-enemy-zone"
	TypeWaterZone       = "water-zone"
	TypeMerchantZone    = "merchant-zone"
)

var standingBases = []terrain.Base{terrain.BaseFloor, terrain.BasePlatform}

// DefaultDefinitions returns fresh copies of the built-in zone types
func DefaultDefinitions() []*TypeDefinition {
	return []*TypeDefinition{
		{
			Name:          TypePlayerStart,
			MinSize:       Size{Width: 1, Height: 1},
			RequiredBases: standingBases,
			AllowedSpawns: []string{entities.LabelPlayer, entities.LabelObjective, entities.LabelEnemyGround, entities.LabelEnemyFlying},
		},
		{
			Name:            TypeObjectiveZone,
			MinSize:         Size{Width: 3, Height: 3},
			RequiredBases:   standingBases,
			AllowedSpawns:   []string{entities.LabelObjective},
			ForbiddenSpawns: []string{entities.LabelEnemyGround, entities.LabelEnemyFlying, entities.LabelMerchant},
			Rules:           []Rule{NoEnemiesRule()},
		},
		{
			Name:            TypeGroundEnemyZone,
			MinSize:         Size{Width: 2, Height: 2},
			RequiredBases:   standingBases,
			AllowedSpawns:   []string{entities.LabelEnemyGround},
			ForbiddenSpawns: []string{entities.LabelObjective, entities.LabelMerchant},
		},
		{
			Name:            TypeFlyingEnemyZone,
			MinSize:         Size{Width: 2, Height: 2},
			AllowedSpawns:   []string{entities.LabelEnemyFlying},
			ForbiddenSpawns: []string{entities.LabelMerchant},
		},
		{
			Name:            TypeWaterZone,
			MinSize:         Size{Width: 1, Height: 1},
			RequiredBases:   []terrain.Base{terrain.BaseWater},
			AllowedSpawns:   []string{entities.LabelEnemyWater, entities.LabelEnemyAmphibious},
			ForbiddenSpawns: []string{entities.LabelPlayer},
		},
		{
			Name:            TypeMerchantZone,
			MinSize:         Size{Width: 3, Height: 2},
			RequiredBases:   standingBases,
			AllowedSpawns:   []string{entities.LabelMerchant},
			ForbiddenSpawns: []string{entities.LabelEnemyGround, entities.LabelEnemyFlying, entities.LabelObjective},
			Rules:           []Rule{SingleMerchantRule(), NoEnemiesRule()},
		},
	}
}

// RegisterDefaults registers the built-in zone types, replacing any with the same name
func (r *Registry) RegisterDefaults() {
	for _, def := range DefaultDefinitions() {
		// names are non-empty constants
		_ = r.Register(def)
	}
}

// SingleMerchantRule allows at most one merchant spawn inside the zone
func SingleMerchantRule() Rule {
	return RuleFunc{
		RuleName: "single-merchant",
		Fn: func(ctx *Context, area *entities.Area, _ TerrainLookup) ([]string, error) {
			count := 0
			for _, sp := range ctx.SpawnsIn(area) {
				if sp.Label == entities.LabelMerchant {
					count++
				}
			}
			if count > 1 {
				return []string{fmt.Sprintf("Merchant zone '%s' has %d merchant spawns (maximum 1)", area.ID, count)}, nil
			}
			return nil, nil
		},
	}
}

// NoEnemiesRule rejects any hostile spawn inside the zone
func NoEnemiesRule() Rule {
	return RuleFunc{
		RuleName: "no-enemies",
		Fn: func(ctx *Context, area *entities.Area, _ TerrainLookup) ([]string, error) {
			count := 0
			for _, sp := range ctx.SpawnsIn(area) {
				if strings.HasPrefix(sp.Label, "enemy_") {
					count++
				}
			}
			if count > 0 {
				return []string{fmt.Sprintf("Zone '%s' must not contain enemy spawns (found %d)", area.ID, count)}, nil
			}
			return nil, nil
		},
	}
}
