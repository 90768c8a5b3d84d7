package level

import (
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// assemble converts the tile-space level data into the product. This is the
// only place tile coordinates become pixels.
func (o *orchestrator) assemble(req *request, data *validator.LevelData, spawn entities.Point) *entities.Level {
	ts := o.validator.TileSize()
	w, h := data.Grid.Width(), data.Grid.Height()

	level := &entities.Level{
		WorldSeed:   req.worldSeed,
		LevelIndex:  req.levelIndex,
		Seed:        req.seed,
		Style:       req.style,
		Difficulty:  req.difficulty,
		Grid:        data.Grid,
		TerrainGrid: data.TerrainGrid,
		Areas:       data.Areas,
		Rooms:       data.Rooms,
		SpawnPoints: data.SpawnPoints,
		Solids:      solids(data.Grid, ts),
		Enemies:     data.Enemies,
		Doors:       doors(data.Grid, data.Rooms, ts),
		Start:       entities.Point{X: spawn.X * ts, Y: spawn.Y * ts},
		Objective:   data.ObjectivePos,
		TileSize:    ts,
		PixelWidth:  w * ts,
		PixelHeight: h * ts,
		Procedural:  true,
	}
	if level.Enemies == nil {
		level.Enemies = []*entities.Enemy{}
	}
	return level
}

// solids emits one collision rect per wall tile, row-major
func solids(grid entities.Grid, ts int) []entities.Rect {
	out := make([]entities.Rect, 0, grid.Count(entities.TileWall))
	for y, row := range grid {
		for x, tile := range row {
			if tile == entities.TileWall {
				out = append(out, tileRect(x, y, ts))
			}
		}
	}
	return out
}

// doors are corridor floor tiles outside every room that touch a room's floor
func doors(grid entities.Grid, rooms []*entities.Room, ts int) []entities.Rect {
	inRoom := func(x, y int) bool {
		for _, r := range rooms {
			if r.Contains(x, y) {
				return true
			}
		}
		return false
	}

	out := []entities.Rect{}
	for _, p := range grid.FloorTiles() {
		if inRoom(p.X, p.Y) {
			continue
		}
		for _, n := range p.Neighbors4() {
			if grid.IsFloor(n.X, n.Y) && inRoom(n.X, n.Y) {
				out = append(out, tileRect(p.X, p.Y, ts))
				break
			}
		}
	}
	return out
}

func tileRect(x, y, ts int) entities.Rect {
	return entities.Rect{X: x * ts, Y: y * ts, Width: ts, Height: ts}
}
