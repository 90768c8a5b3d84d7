package level

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
)

// hardWallRatio is the share of interior cells the hard tier turns into wall
const hardWallRatio = 0.05

// applyDifficulty adjusts a raw layout in place. Easy and normal leave it
// unchanged; hard drops random interior walls.
func applyDifficulty(grid entities.Grid, difficulty int, roller dice.Roller) {
	if difficulty < entities.DifficultyHard {
		return
	}

	w, h := grid.Width(), grid.Height()
	if w < 3 || h < 3 {
		return
	}
	count := int(float64(w*h) * hardWallRatio)
	for i := 0; i < count; i++ {
		x := 1 + rng.Intn(roller, w-2)
		y := 1 + rng.Intn(roller, h-2)
		grid[y][x] = entities.TileWall
	}
}

// sealBoundary forces the outer ring to wall
func sealBoundary(grid entities.Grid) {
	h, w := grid.Height(), grid.Width()
	if h == 0 || w == 0 {
		return
	}
	for x := 0; x < w; x++ {
		grid[0][x] = entities.TileWall
		grid[h-1][x] = entities.TileWall
	}
	for y := 0; y < h; y++ {
		grid[y][0] = entities.TileWall
		grid[y][w-1] = entities.TileWall
	}
}
