package validator

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

// checkAreas delegates to the area registry. A failure inside the registry
// is reported as one non-fatal issue instead of aborting validation.
func (v *Validator) checkAreas(p *pass) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("Area validation failed", "panic", rec)
			p.add(fmt.Sprintf("Area system validation error (non-fatal): %v", rec))
		}
	}()

	p.add(v.areas.ValidateLevelAreas(p.data.Areas, v.zoneContext(p.data), p.data.TerrainGrid)...)
}

// zoneContext collects every labelled spawn of the level in tile space
func (v *Validator) zoneContext(data *LevelData) *areas.Context {
	ctx := &areas.Context{}
	for _, sp := range data.SpawnPoints {
		ctx.Spawns = append(ctx.Spawns, entities.EntitySpawn{Label: entities.LabelPlayer, X: sp.X, Y: sp.Y})
	}
	if data.ObjectivePos != nil {
		t := v.toTile(*data.ObjectivePos)
		ctx.Spawns = append(ctx.Spawns, entities.EntitySpawn{Label: entities.LabelObjective, X: t.X, Y: t.Y})
	}
	for _, h := range v.hostiles(data) {
		label := entities.LabelEnemyGround
		if profile, ok := entities.LookupEnemyProfile(h.Type); ok {
			label = profile.SpawnLabel()
		}
		ctx.Spawns = append(ctx.Spawns, entities.EntitySpawn{Label: label, Type: h.Type, X: h.Tile.X, Y: h.Tile.Y})
	}
	for _, m := range data.MerchantSpawns {
		ctx.Spawns = append(ctx.Spawns, entities.EntitySpawn{Label: entities.LabelMerchant, X: m.X, Y: m.Y})
	}
	for _, room := range data.Rooms {
		ctx.Spawns = append(ctx.Spawns, room.Spawns...)
	}
	return ctx
}

// hostile is an enemy in tile space, whether placed or only described
type hostile struct {
	Type string
	Tile entities.Point
}

// hostiles lists placed enemies first, then spawn descriptors
func (v *Validator) hostiles(data *LevelData) []hostile {
	out := make([]hostile, 0, len(data.Enemies)+len(data.EnemySpawns))
	for _, e := range data.Enemies {
		out = append(out, hostile{Type: e.Type, Tile: e.Tile(v.tileSize)})
	}
	for _, sp := range data.EnemySpawns {
		out = append(out, hostile{Type: sp.Type, Tile: entities.Point{X: sp.X, Y: sp.Y}})
	}
	return out
}
