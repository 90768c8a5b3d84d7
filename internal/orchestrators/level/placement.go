package level

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
)

// Player bounding box in pixels and the padding kept clear around it
const (
	playerWidth   = 18
	playerHeight  = 30
	safetyPadX    = 32
	safetyPadY    = 16
	spacingPadX   = 4
	enemyTileArea = 300
)

// enemyTables lists the enemy types each difficulty tier draws from
var enemyTables = map[int][]string{
	entities.DifficultyEasy:   {"Bug", "Frog", "Bee"},
	entities.DifficultyNormal: {"Bug", "Frog", "Bee", "Archer", "Assassin"},
	entities.DifficultyHard:   {"Bug", "Frog", "Bee", "Archer", "Assassin", "WizardCaster", "Golem", "Boss"},
}

// chooseSpawn returns the first spawn point inside the largest floor
// component, falling back to the row-major first interior tile of that
// component. Spawns in smaller pockets are passed over.
func chooseSpawn(grid entities.Grid, spawns []entities.Point) (entities.Point, error) {
	largest, _ := pathing.Largest(pathing.Components(grid))
	if largest == nil {
		return entities.Point{}, errors.FailedPrecondition("generated layout has no floor tiles")
	}

	for _, sp := range spawns {
		if largest.Contains(sp) {
			return sp, nil
		}
	}
	for _, p := range interiorFloor(grid) {
		if largest.Contains(p) {
			return p, nil
		}
	}
	return largest.Tiles[0], nil
}

// spawnFirst moves spawn to the front of the spawn list, dropping duplicates
// and spawns that are no longer on floor
func spawnFirst(grid entities.Grid, spawn entities.Point, spawns []entities.Point) []entities.Point {
	out := make([]entities.Point, 0, len(spawns)+1)
	out = append(out, spawn)
	for _, sp := range spawns {
		if sp != spawn && grid.IsFloor(sp.X, sp.Y) {
			out = append(out, sp)
		}
	}
	return out
}

// syncPlayerSpawn points every player spawn descriptor of the rooms at the
// chosen spawn tile
func syncPlayerSpawn(rooms []*entities.Room, spawn entities.Point) {
	for _, room := range rooms {
		for i := range room.Spawns {
			if room.Spawns[i].Label == entities.LabelPlayer {
				room.Spawns[i].X, room.Spawns[i].Y = spawn.X, spawn.Y
			}
		}
	}
}

// placement is the input of enemy placement
type placement struct {
	grid       entities.Grid
	terrain    [][]string
	areas      *entities.AreaMap
	spawn      entities.Point
	objective  *entities.Point
	difficulty int
	tileSize   int
	roller     dice.Roller
}

// placeEnemies fills enemy slots closest-first from the safe reachable
// tiles. Slot types are drawn before any candidate is tried. When no slot
// could be filled, fallbackEnemy places one enemy of any type of the tier.
func (o *orchestrator) placeEnemies(p *placement) []*entities.Enemy {
	candidates := o.enemyCandidates(p)
	if len(candidates) == 0 {
		slog.Warn("No enemy candidates", "spawn_x", p.spawn.X, "spawn_y", p.spawn.Y)
		return nil
	}

	slots := max(1, p.grid.Width()*p.grid.Height()/enemyTileArea)
	table := enemyTables[p.difficulty]
	if len(table) == 0 {
		table = enemyTables[entities.DifficultyNormal]
	}
	types := make([]string, slots)
	for i := range types {
		types[i] = table[rng.Intn(p.roller, len(table))]
	}

	safety := entities.Rect{
		X:      p.spawn.X * p.tileSize,
		Y:      p.spawn.Y * p.tileSize,
		Width:  playerWidth,
		Height: playerHeight,
	}.Inflate(safetyPadX, safetyPadY)

	var placed []*entities.Enemy
	for _, c := range candidates {
		if len(placed) == slots {
			break
		}
		enemyType := types[len(placed)]
		if !o.allowsEnemy(p, c, enemyType) {
			continue
		}
		enemy := entities.NewEnemyAt(fmt.Sprintf("enemy_%d", len(placed)), enemyType, c, p.tileSize)
		footprint := enemy.Footprint()
		if footprint.Intersects(safety) || crowded(footprint, placed) {
			continue
		}
		placed = append(placed, enemy)
	}

	if len(placed) == 0 {
		placed = o.fallbackEnemy(p, candidates, table, safety)
	}

	return placed
}

// fallbackEnemy ignores the drawn slot types and tries every type of the
// tier in table order, keeping the safety box. Spacing does not apply to a
// single enemy.
func (o *orchestrator) fallbackEnemy(p *placement, candidates []entities.Point, table []string, safety entities.Rect) []*entities.Enemy {
	for _, enemyType := range table {
		for _, c := range candidates {
			if !o.allowsEnemy(p, c, enemyType) {
				continue
			}
			enemy := entities.NewEnemyAt("enemy_0", enemyType, c, p.tileSize)
			if enemy.Footprint().Intersects(safety) {
				continue
			}
			slog.Debug("Placed fallback enemy", "type", enemy.Type, "x", c.X, "y", c.Y)
			return []*entities.Enemy{enemy}
		}
	}
	return nil
}

// enemyCandidates lists interior standable tiles reachable from spawn that
// are not the spawn, its neighbours, the objective or inside the player
// start, closest to spawn first
func (o *orchestrator) enemyCandidates(p *placement) []entities.Point {
	excluded := mapset.New[entities.Point]()
	excluded.Put(p.spawn)
	for _, n := range p.spawn.Neighbors4() {
		excluded.Put(n)
	}
	if p.objective != nil {
		excluded.Put(*p.objective)
	}
	for _, area := range p.areas.OfType(areas.TypePlayerStart) {
		for _, t := range area.Tiles() {
			excluded.Put(t)
		}
	}

	lookup := o.terrains.Lookup(p.terrain)
	reach := pathing.ReachableSet(p.grid, p.spawn)

	var out []entities.Point
	for _, t := range interiorFloor(p.grid) {
		if excluded.Has(t) || !reach[t.Y][t.X] {
			continue
		}
		tag, err := lookup(t.X, t.Y)
		if err != nil || !o.terrains.IsPlatformLike(tag) || o.terrains.IsHazardous(tag) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b entities.Point) int {
		return cmp.Compare(a.Manhattan(p.spawn), b.Manhattan(p.spawn))
	})
	return out
}

// allowsEnemy checks terrain support and that every zone over the tile
// admits the enemy's spawn label
func (o *orchestrator) allowsEnemy(p *placement, t entities.Point, enemyType string) bool {
	profile, ok := entities.LookupEnemyProfile(enemyType)
	if !ok {
		return false
	}

	tag, err := o.terrains.Lookup(p.terrain)(t.X, t.Y)
	if err != nil || !o.terrains.SupportsEnemy(tag, profile.Traits) {
		return false
	}

	label := profile.SpawnLabel()
	for _, area := range p.areas.At(t.X, t.Y) {
		def, err := o.areas.Get(area.Type)
		if err != nil || !def.Allows(label) {
			return false
		}
	}
	return true
}

// crowded reports whether a footprint, padded horizontally, touches any placed enemy
func crowded(footprint entities.Rect, placed []*entities.Enemy) bool {
	padded := footprint.Inflate(spacingPadX, 0)
	for _, e := range placed {
		if padded.Intersects(e.Footprint()) {
			return true
		}
	}
	return false
}
