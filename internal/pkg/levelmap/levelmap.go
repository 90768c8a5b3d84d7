// Package levelmap draws levels as text for the command line.
package levelmap

import (
	"bufio"
	"fmt"
	"io"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// Glyphs per terrain id; unknown ids draw as their grid tile
var terrainGlyphs = map[string]byte{
	terrain.WallSolid:      '#',
	terrain.FloorNormal:    '.',
	terrain.FloorSticky:    ',',
	terrain.FloorIcy:       '-',
	terrain.FloorFire:      '^',
	terrain.PlatformNormal: '=',
	terrain.PlatformSticky: ';',
	terrain.PlatformIcy:    '_',
	terrain.PlatformFire:   '*',
	terrain.Water:          '~',
}

// Entity glyphs, drawn over terrain
const (
	glyphSpawn     = '@'
	glyphObjective = 'O'
	glyphEnemy     = 'E'
	glyphMerchant  = 'M'
)

// Legend lists every glyph with its meaning in drawing order
var Legend = []string{
	"# wall_solid", ". floor_normal", ", floor_sticky", "- floor_icy", "^ floor_fire",
	"= platform_normal", "; platform_sticky", "_ platform_icy", "* platform_fire", "~ water",
	"@ player spawn", "O objective", "E enemy", "M merchant",
}

// Grid returns the glyph rows of a level. Entities overwrite terrain in the
// order merchant, enemies, objective, spawn.
func Grid(level *entities.Level) [][]byte {
	if level == nil {
		return nil
	}

	rows := make([][]byte, level.Grid.Height())
	for y, row := range level.Grid {
		rows[y] = make([]byte, len(row))
		for x, tile := range row {
			rows[y][x] = tileGlyph(level, x, y, tile)
		}
	}

	put := func(p entities.Point, g byte) {
		if level.Grid.InBounds(p.X, p.Y) {
			rows[p.Y][p.X] = g
		}
	}
	for _, m := range level.MerchantSpawns {
		put(m, glyphMerchant)
	}
	ts := max(1, level.TileSize)
	for _, e := range level.Enemies {
		put(e.Tile(ts), glyphEnemy)
	}
	if level.Objective != nil {
		put(entities.Point{X: level.Objective.X / ts, Y: level.Objective.Y / ts}, glyphObjective)
	}
	if len(level.SpawnPoints) > 0 {
		put(level.SpawnPoints[0], glyphSpawn)
	}
	return rows
}

func tileGlyph(level *entities.Level, x, y int, tile entities.Tile) byte {
	if y < len(level.TerrainGrid) && x < len(level.TerrainGrid[y]) {
		if g, ok := terrainGlyphs[level.TerrainGrid[y][x]]; ok {
			return g
		}
	}
	if tile == entities.TileWall {
		return '#'
	}
	return '.'
}

// Render writes the level map followed by a one-line summary
func Render(w io.Writer, level *entities.Level) error {
	bw := bufio.NewWriter(w)
	for _, row := range Grid(level) {
		if _, err := bw.Write(row); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if level != nil {
		fmt.Fprintf(bw, "%dx%d %s difficulty=%d seed=%d enemies=%d zones=%d\n",
			level.Grid.Width(), level.Grid.Height(), level.Style, level.Difficulty,
			level.Seed, len(level.Enemies), level.Areas.Len())
	}
	return bw.Flush()
}
