package level

import (
	"cmp"
	"slices"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// stampZones builds the default zones of a generated level: the player
// start around spawn, an objective zone in the objective room and one zone
// per water rectangle. Player start and objective zone only cover tiles
// reachable from spawn.
func (o *orchestrator) stampZones(data *validator.LevelData, spawn entities.Point) *entities.AreaMap {
	lookup := o.terrains.Lookup(data.TerrainGrid)
	reach := pathing.ReachableSet(data.Grid, spawn)
	standable := func(x, y int) bool {
		if !data.Grid.IsFloor(x, y) || !reach[y][x] {
			return false
		}
		tag, err := lookup(x, y)
		return err == nil && o.terrains.IsPlatformLike(tag)
	}

	m := entities.NewAreaMap()
	m.Add(areas.BuildPlayerStart(spawn, data.Grid.Width(), data.Grid.Height(), standable))
	m.Add(areas.BuildObjectiveZone(data.Rooms, spawn, standable))
	for _, water := range areas.BuildWaterZones(data.TerrainGrid, areas.TerrainLookup(lookup)) {
		m.Add(water)
	}
	return m
}

// placeObjective picks the farthest reachable tile from spawn, preferring
// tiles inside objective zones. Nil when no candidate is reachable.
func placeObjective(grid entities.Grid, zones *entities.AreaMap, spawn entities.Point) *entities.Point {
	candidates := areas.FindSpawnPositions(zones, areas.TypeObjectiveZone, grid)
	if len(candidates) == 0 {
		candidates = interiorFloor(grid)
	}

	slices.SortStableFunc(candidates, func(a, b entities.Point) int {
		return cmp.Compare(b.Manhattan(spawn), a.Manhattan(spawn))
	})

	reach := pathing.ReachableSet(grid, spawn)
	for _, c := range candidates {
		if c != spawn && reach[c.Y][c.X] {
			p := c
			return &p
		}
	}
	return nil
}

// interiorFloor lists floor tiles off the outer ring in row-major order
func interiorFloor(grid entities.Grid) []entities.Point {
	var out []entities.Point
	for _, p := range grid.FloorTiles() {
		if grid.IsInterior(p.X, p.Y) {
			out = append(out, p)
		}
	}
	return out
}
