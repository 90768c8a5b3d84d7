package validator

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
)

func (v *Validator) checkSpawnPoints(p *pass) {
	grid := p.data.Grid
	spawns := p.data.SpawnPoints
	if len(spawns) < v.thresholds.MinSpawnPoints {
		p.add(fmt.Sprintf("Insufficient spawn points: %d < %d", len(spawns), v.thresholds.MinSpawnPoints))
	}

	for i, sp := range spawns {
		switch {
		case !grid.InBounds(sp.X, sp.Y):
			p.add(fmt.Sprintf("Spawn point %d (%d, %d) is out of bounds", i, sp.X, sp.Y))
		case !grid.IsFloor(sp.X, sp.Y):
			p.add(fmt.Sprintf("Spawn point %d (%d, %d) is not on floor", i, sp.X, sp.Y))
		case v.boxedIn(grid, sp):
			p.add(fmt.Sprintf("Spawn point %d: spawn point surrounded by walls", i))
		}
	}
}

// SafeSpawn reports whether a tile is floor and not boxed in by walls
func (v *Validator) SafeSpawn(grid entities.Grid, pt entities.Point) bool {
	return grid.IsFloor(pt.X, pt.Y) && !v.boxedIn(grid, pt)
}

func (v *Validator) boxedIn(grid entities.Grid, pt entities.Point) bool {
	return wallNeighbours(grid, pt) >= v.thresholds.BoxedInWalls
}

// wallNeighbours counts walls among the 8 neighbours; out of bounds counts as wall
func wallNeighbours(grid entities.Grid, pt entities.Point) int {
	walls := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if grid.IsWall(pt.X+dx, pt.Y+dy) {
				walls++
			}
		}
	}
	return walls
}

// spaceScore counts floor tiles in the 5x5 window around a tile, centre excluded
func spaceScore(grid entities.Grid, x, y int) int {
	score := 0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if (dx != 0 || dy != 0) && grid.IsFloor(x+dx, y+dy) {
				score++
			}
		}
	}
	return score
}

// isChokepoint holds for interior floor with exactly two orthogonal floor neighbours
func isChokepoint(grid entities.Grid, x, y int) bool {
	if !grid.IsInterior(x, y) || !grid.IsFloor(x, y) {
		return false
	}
	open := 0
	for _, n := range (entities.Point{X: x, Y: y}).Neighbors4() {
		if grid.IsFloor(n.X, n.Y) {
			open++
		}
	}
	return open == 2
}

// checkCombatSpace floods the open tiles (roomy floor that is not a
// chokepoint) and counts the regions big enough to fight in
func (v *Validator) checkCombatSpace(p *pass) {
	grid := p.data.Grid
	open := entities.NewGrid(grid.Width(), grid.Height(), entities.TileWall)
	chokepoints := 0
	for y, row := range grid {
		for x, cell := range row {
			if cell != entities.TileFloor {
				continue
			}
			if isChokepoint(grid, x, y) {
				chokepoints++
				continue
			}
			if spaceScore(grid, x, y) >= v.thresholds.OpenSpaceScore {
				open[y][x] = entities.TileFloor
			}
		}
	}

	areas := 0
	for _, c := range pathing.Components(open) {
		if c.Size() >= v.thresholds.CombatAreaSize {
			areas++
		}
	}
	p.metrics.Chokepoints = chokepoints
	p.metrics.CombatAreas = areas

	if areas < v.thresholds.MinCombatAreas {
		p.add(fmt.Sprintf("Insufficient combat areas: %d", areas))
	}
}

// checkTerrain verifies the terrain grid shape and that every id resolves.
// Each unknown id is reported once, at its first row-major position.
func (v *Validator) checkTerrain(p *pass) {
	tg := p.data.TerrainGrid
	if len(tg) == 0 {
		return
	}
	if !sameShape(p.data.Grid, tg) {
		p.add("Terrain grid dimensions don't match level grid")
		return
	}

	unknown := mapset.New[string]()
	for y, row := range tg {
		for x, id := range row {
			if unknown.Has(id) {
				continue
			}
			if _, err := v.terrains.Resolve(id); err != nil {
				unknown.Put(id)
				p.add(fmt.Sprintf("Unknown terrain id '%s' at (%d,%d)", id, x, y))
			}
		}
	}
}

func sameShape(grid entities.Grid, tg [][]string) bool {
	if len(tg) != grid.Height() {
		return false
	}
	for y, row := range tg {
		if len(row) != len(grid[y]) {
			return false
		}
	}
	return true
}

// isolatedTiles lists floor tiles with all 8 neighbours wall
func isolatedTiles(grid entities.Grid) []entities.Point {
	var out []entities.Point
	for _, pt := range grid.FloorTiles() {
		if wallNeighbours(grid, pt) == 8 {
			out = append(out, pt)
		}
	}
	return out
}
