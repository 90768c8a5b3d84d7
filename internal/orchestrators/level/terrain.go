package level

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// terrainRoll maps an inclusive d100 ceiling to a terrain id
type terrainRoll struct {
	upTo int
	id   string
}

// terrainTables are the per-style floor tables; ceilings ascend to 100
var terrainTables = map[string][]terrainRoll{
	entities.StyleDungeon: {
		{80, terrain.FloorNormal},
		{88, terrain.PlatformNormal},
		{94, terrain.FloorSticky},
		{100, terrain.FloorIcy},
	},
	entities.StyleCave: {
		{55, terrain.FloorNormal},
		{70, terrain.FloorSticky},
		{82, terrain.PlatformNormal},
		{92, terrain.Water},
		{100, terrain.FloorFire},
	},
	entities.StyleOutdoor: {
		{50, terrain.FloorNormal},
		{65, terrain.PlatformNormal},
		{80, terrain.Water},
		{90, terrain.FloorIcy},
		{100, terrain.PlatformSticky},
	},
	entities.StyleHybrid: {
		{60, terrain.FloorNormal},
		{70, terrain.PlatformNormal},
		{78, terrain.FloorSticky},
		{85, terrain.FloorIcy},
		{92, terrain.Water},
		{96, terrain.PlatformIcy},
		{100, terrain.FloorFire},
	},
}

// assignTerrain rolls a terrain id for every floor tile in row-major order.
// Walls become wall_solid and the spawn tile is always plain floor.
func assignTerrain(grid entities.Grid, style string, spawn entities.Point, roller dice.Roller) [][]string {
	table, ok := terrainTables[style]
	if !ok {
		table = terrainTables[entities.StyleDungeon]
	}

	out := make([][]string, grid.Height())
	for y, row := range grid {
		out[y] = make([]string, len(row))
		for x, tile := range row {
			switch {
			case tile == entities.TileWall:
				out[y][x] = terrain.WallSolid
			case x == spawn.X && y == spawn.Y:
				out[y][x] = terrain.FloorNormal
			default:
				out[y][x] = rollTerrain(table, roller)
			}
		}
	}
	return out
}

func rollTerrain(table []terrainRoll, roller dice.Roller) string {
	v, err := roller.Roll(100)
	if err != nil {
		return terrain.FloorNormal
	}
	for _, entry := range table {
		if v <= entry.upTo {
			return entry.id
		}
	}
	return terrain.FloorNormal
}
