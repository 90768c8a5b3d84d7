package areas

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// TileCheck reports whether a tile is acceptable for a zone
type TileCheck func(x, y int) bool

// BuildPlayerStart picks the largest rect around the spawn whose tiles all
// pass the check: a centred 3x3, then any 2x2 holding the spawn, then 1x1.
// Returns nil when the spawn tile itself fails.
func BuildPlayerStart(spawn entities.Point, width, height int, ok TileCheck) *entities.Area {
	candidates := []entities.Rect{
		{X: spawn.X - 1, Y: spawn.Y - 1, Width: 3, Height: 3},
		{X: spawn.X - 1, Y: spawn.Y - 1, Width: 2, Height: 2},
		{X: spawn.X, Y: spawn.Y - 1, Width: 2, Height: 2},
		{X: spawn.X - 1, Y: spawn.Y, Width: 2, Height: 2},
		{X: spawn.X, Y: spawn.Y, Width: 2, Height: 2},
		{X: spawn.X, Y: spawn.Y, Width: 1, Height: 1},
	}

	for _, rect := range candidates {
		rect = rect.Clamp(width, height)
		if !rect.Contains(spawn.X, spawn.Y) || !allTiles(rect, ok) {
			continue
		}
		return &entities.Area{ID: "player_start", Type: TypePlayerStart, Rect: rect}
	}
	return nil
}

// BuildObjectiveZone finds a 3x3 block of acceptable tiles for the objective.
// Rooms flagged as objective are searched first, then the rest by distance
// from spawn, farthest first. Inside a room, blocks farther from spawn win.
func BuildObjectiveZone(rooms []*entities.Room, spawn entities.Point, ok TileCheck) *entities.Area {
	ordered := make([]*entities.Room, len(rooms))
	copy(ordered, rooms)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsObjective != ordered[j].IsObjective {
			return ordered[i].IsObjective
		}
		return ordered[i].Center().Manhattan(spawn) > ordered[j].Center().Manhattan(spawn)
	})

	for _, room := range ordered {
		var best *entities.Rect
		bestDist := -1
		for y := room.Y; y+3 <= room.Y+room.Height; y++ {
			for x := room.X; x+3 <= room.X+room.Width; x++ {
				block := entities.Rect{X: x, Y: y, Width: 3, Height: 3}
				if block.Contains(spawn.X, spawn.Y) || !allTiles(block, ok) {
					continue
				}
				if d := block.Center().Manhattan(spawn); d > bestDist {
					bestDist = d
					b := block
					best = &b
				}
			}
		}
		if best != nil {
			return &entities.Area{ID: "objective_zone", Type: TypeObjectiveZone, Rect: *best}
		}
	}
	return nil
}

// BuildWaterZones covers water tiles with greedy rectangles: each unclaimed
// water tile in row-major order grows right, then down while whole rows hold.
func BuildWaterZones(terrainGrid [][]string, lookup TerrainLookup) []*entities.Area {
	isWater := func(x, y int) bool {
		tag, err := lookup(x, y)
		return err == nil && tag.Base == terrain.BaseWater
	}

	claimed := make([][]bool, len(terrainGrid))
	for y := range claimed {
		claimed[y] = make([]bool, len(terrainGrid[y]))
	}
	free := func(x, y int) bool {
		return y < len(claimed) && x < len(claimed[y]) && !claimed[y][x] && isWater(x, y)
	}

	var out []*entities.Area
	for y := range terrainGrid {
		for x := range terrainGrid[y] {
			if !free(x, y) {
				continue
			}
			w := 1
			for free(x+w, y) {
				w++
			}
			h := 1
			for rowFree(free, x, y+h, w) {
				h++
			}
			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					claimed[yy][xx] = true
				}
			}
			out = append(out, &entities.Area{
				ID:   fmt.Sprintf("water_%d", len(out)),
				Type: TypeWaterZone,
				Rect: entities.Rect{X: x, Y: y, Width: w, Height: h},
			})
		}
	}
	return out
}

// FindSpawnPositions lists floor tiles covered by zones of a type, row-major
// within each zone and without duplicates.
func FindSpawnPositions(m *entities.AreaMap, areaType string, grid entities.Grid) []entities.Point {
	seen := make(map[entities.Point]bool)
	var out []entities.Point
	for _, area := range m.OfType(areaType) {
		for _, p := range area.Tiles() {
			if grid.IsFloor(p.X, p.Y) && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func rowFree(free func(x, y int) bool, x, y, w int) bool {
	for xx := x; xx < x+w; xx++ {
		if !free(xx, y) {
			return false
		}
	}
	return true
}

func allTiles(rect entities.Rect, ok TileCheck) bool {
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			if !ok(x, y) {
				return false
			}
		}
	}
	return true
}
