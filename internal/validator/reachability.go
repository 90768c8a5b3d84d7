package validator

import (
	"fmt"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

const traitFireResistant = "fire_resistant"

// checkEntities validates each hostile's tile, terrain and path to any player spawn
func (v *Validator) checkEntities(p *pass) {
	grid := p.data.Grid
	reach := reachFromAny(grid, p.data.SpawnPoints)
	var lookup func(x, y int) (terrain.Tag, error)
	if len(p.data.TerrainGrid) > 0 && sameShape(grid, p.data.TerrainGrid) {
		lookup = v.terrains.Lookup(p.data.TerrainGrid)
	}

	for i, h := range v.hostiles(p.data) {
		profile, ok := entities.LookupEnemyProfile(h.Type)
		if !ok {
			p.add(fmt.Sprintf("Unknown enemy type: %s", h.Type))
			continue
		}
		if !grid.IsFloor(h.Tile.X, h.Tile.Y) {
			if grid.InBounds(h.Tile.X, h.Tile.Y) {
				p.add(fmt.Sprintf("Enemy %d (%s) spawn not on floor", i, h.Type))
			} else {
				p.add(fmt.Sprintf("Enemy %d (%s) spawn out of bounds", i, h.Type))
			}
			p.spawns = append(p.spawns, EntitySpawnCheck{Index: i, Type: h.Type, Tile: h.Tile})
			continue
		}

		check := EntitySpawnCheck{
			Index:             i,
			Type:              h.Type,
			Tile:              h.Tile,
			OnFloor:           true,
			TerrainCompatible: true,
			Reachable:         reach[h.Tile.Y][h.Tile.X],
		}
		if lookup != nil {
			// unresolved ids are reported by the terrain stage
			if tag, err := lookup(h.Tile.X, h.Tile.Y); err == nil {
				check.TerrainCompatible = v.terrains.SupportsEnemy(tag, profile.Traits)
				check.Hazardous = v.terrains.IsHazardous(tag) &&
					!(tag.HasModifier(terrain.ModFire) && profile.HasTrait(traitFireResistant))
			}
		}
		if profile.Ranged && len(p.data.SpawnPoints) > 0 {
			check.LineOfSight = LineOfSight(grid, h.Tile, p.data.SpawnPoints[0])
		}
		p.spawns = append(p.spawns, check)

		if !check.TerrainCompatible {
			p.add(fmt.Sprintf("Enemy %d (%s) terrain incompatible", i, h.Type))
		}
		if check.Hazardous {
			p.add(fmt.Sprintf("Enemy %d (%s) spawn in hazardous area", i, h.Type))
		}
		if !check.Reachable {
			p.add(fmt.Sprintf("Enemy %d (%s) cannot reach player", i, h.Type))
		}
	}
}

// playerSpawn validates the first spawn point, the origin of every
// reachability check. ok is false when an issue was recorded.
func playerSpawn(p *pass, missing string) (entities.Point, bool) {
	grid := p.data.Grid
	if len(p.data.SpawnPoints) == 0 {
		p.add(missing)
		return entities.Point{}, false
	}
	sp := p.data.SpawnPoints[0]
	if !grid.InBounds(sp.X, sp.Y) {
		p.add(fmt.Sprintf("Player spawn (%d, %d) is out of bounds", sp.X, sp.Y))
		return sp, false
	}
	if !grid.IsFloor(sp.X, sp.Y) {
		p.add(fmt.Sprintf("Player spawn (%d, %d) is not on floor", sp.X, sp.Y))
		return sp, false
	}
	return sp, true
}

func (v *Validator) checkObjective(p *pass) {
	sp, ok := playerSpawn(p, "No player spawn points found")
	if !ok {
		return
	}
	if p.data.ObjectivePos == nil {
		p.add("No portal position found in level data")
		return
	}

	grid := p.data.Grid
	t := v.toTile(*p.data.ObjectivePos)
	switch {
	case !grid.InBounds(t.X, t.Y):
		p.add(fmt.Sprintf("Portal position (%d, %d) is out of bounds", t.X, t.Y))
	case !grid.IsFloor(t.X, t.Y):
		p.add(fmt.Sprintf("Portal position (%d, %d) is not on floor", t.X, t.Y))
	case !pathing.Reachable(grid, sp, t):
		p.add(fmt.Sprintf("Portal at (%d, %d) is not reachable from player spawn (%d, %d)", t.X, t.Y, sp.X, sp.Y))
	}
}

func (v *Validator) checkEnemyReachability(p *pass) {
	sp, ok := playerSpawn(p, "No player spawn points found for enemy validation")
	if !ok {
		return
	}

	hostiles := v.hostiles(p.data)
	if len(hostiles) == 0 {
		p.add("No enemies found in level - at least one enemy must be present")
		return
	}

	grid := p.data.Grid
	reach := pathing.ReachableSet(grid, sp)
	reachable := 0
	for _, h := range hostiles {
		if grid.IsFloor(h.Tile.X, h.Tile.Y) && reach[h.Tile.Y][h.Tile.X] {
			reachable++
		}
	}
	if reachable == 0 {
		p.add(fmt.Sprintf("No reachable enemies found - found %d enemies but none are reachable from player spawn", len(hostiles)))
	}
}

// reachFromAny marks tiles reachable from at least one of the spawns
func reachFromAny(grid entities.Grid, spawns []entities.Point) [][]bool {
	union := make([][]bool, grid.Height())
	for y := range union {
		union[y] = make([]bool, len(grid[y]))
	}
	for _, sp := range spawns {
		if !grid.IsFloor(sp.X, sp.Y) || union[sp.Y][sp.X] {
			continue
		}
		set := pathing.ReachableSet(grid, sp)
		for y, row := range set {
			for x, ok := range row {
				union[y][x] = union[y][x] || ok
			}
		}
	}
	return union
}

// LineOfSight walks a Bresenham line between two tiles; any wall on the line,
// endpoints included, blocks it
func LineOfSight(grid entities.Grid, from, to entities.Point) bool {
	x, y := from.X, from.Y
	dx, dy := abs(to.X-x), abs(to.Y-y)
	sx, sy := -1, -1
	if x < to.X {
		sx = 1
	}
	if y < to.Y {
		sy = 1
	}
	e := dx - dy

	for {
		if grid.IsWall(x, y) {
			return false
		}
		if x == to.X && y == to.Y {
			return true
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
