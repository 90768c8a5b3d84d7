package testutils

import (
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// TwoRoomGrid is a 20x8 pair of 6x6 rooms joined by a corridor on row 3
func TwoRoomGrid() entities.Grid {
	return entities.ParseGrid(
		"####################",
		"#......######......#",
		"#......######......#",
		"#..................#",
		"#......######......#",
		"#......######......#",
		"#......######......#",
		"####################",
	)
}

// PlainTerrain maps walls to wall_solid and floors to floor_normal
func PlainTerrain(grid entities.Grid) [][]string {
	out := make([][]string, grid.Height())
	for y, row := range grid {
		out[y] = make([]string, len(row))
		for x, cell := range row {
			if cell == entities.TileWall {
				out[y][x] = terrain.WallSolid
			} else {
				out[y][x] = terrain.FloorNormal
			}
		}
	}
	return out
}

// CreateTestLevel builds a small stored-level fixture
func CreateTestLevel(id string, worldSeed int64, index int) *entities.Level {
	grid := TwoRoomGrid()
	return &entities.Level{
		ID:          id,
		WorldSeed:   worldSeed,
		LevelIndex:  index,
		Seed:        uint64(1000 + index),
		Style:       entities.StyleDungeon,
		Difficulty:  entities.DifficultyNormal,
		Grid:        grid,
		TerrainGrid: PlainTerrain(grid),
		Areas: entities.NewAreaMap(&entities.Area{
			ID:   "player_start",
			Type: "player-start",
			Rect: entities.Rect{X: 2, Y: 2, Width: 3, Height: 3},
		}),
		SpawnPoints: []entities.Point{{X: 3, Y: 3}},
		Enemies:     []*entities.Enemy{entities.NewEnemyAt("enemy_1", "Bug", entities.Point{X: 15, Y: 5}, 24)},
		Start:       entities.Point{X: 72, Y: 72},
		TileSize:    24,
		PixelWidth:  20 * 24,
		PixelHeight: 8 * 24,
		Procedural:  true,
	}
}
