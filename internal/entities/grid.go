// Package entities holds the data model shared by generation, validation and storage
package entities

import "strings"

// Tile is a single cell code of a level grid
type Tile int

const (
	// TileFloor is traversable
	TileFloor Tile = 0
	// TileWall is impassable
	TileWall Tile = 1
)

// Grid is a rectangular array of tiles indexed [y][x]
type Grid [][]Tile

// NewGrid creates a width x height grid filled with a single tile
func NewGrid(width, height int, fill Tile) Grid {
	grid := make(Grid, height)
	for y := range grid {
		row := make([]Tile, width)
		for x := range row {
			row[x] = fill
		}
		grid[y] = row
	}
	return grid
}

// Height returns the number of rows
func (g Grid) Height() int {
	return len(g)
}

// Width returns the length of the first row
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether (x, y) addresses a cell
func (g Grid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

// IsFloor reports whether (x, y) is an in-bounds floor tile
func (g Grid) IsFloor(x, y int) bool {
	return g.InBounds(x, y) && g[y][x] == TileFloor
}

// IsWall treats out-of-bounds cells as wall
func (g Grid) IsWall(x, y int) bool {
	return !g.InBounds(x, y) || g[y][x] == TileWall
}

// Set writes a tile when (x, y) is in bounds
func (g Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g[y][x] = t
	}
}

// IsInterior reports whether (x, y) lies strictly inside the outer ring
func (g Grid) IsInterior(x, y int) bool {
	return x > 0 && y > 0 && y < g.Height()-1 && x < g.Width()-1
}

// Clone returns a deep copy
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]Tile(nil), row...)
	}
	return out
}

// Count returns how many cells hold the given tile
func (g Grid) Count(t Tile) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == t {
				n++
			}
		}
	}
	return n
}

// FloorTiles lists floor cells in row-major order
func (g Grid) FloorTiles() []Point {
	var out []Point
	for y, row := range g {
		for x, cell := range row {
			if cell == TileFloor {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Diff counts cells that differ between two grids of the same shape.
// Cells missing from either grid count as different.
func (g Grid) Diff(other Grid) int {
	diff := 0
	rows := max(len(g), len(other))
	for y := 0; y < rows; y++ {
		var a, b []Tile
		if y < len(g) {
			a = g[y]
		}
		if y < len(other) {
			b = other[y]
		}
		cols := max(len(a), len(b))
		for x := 0; x < cols; x++ {
			if x >= len(a) || x >= len(b) || a[x] != b[x] {
				diff++
			}
		}
	}
	return diff
}

// String renders the grid as '#' walls and '.' floor
func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		for _, cell := range row {
			if cell == TileWall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of '#' and '.' characters
func ParseGrid(rows ...string) Grid {
	grid := make(Grid, len(rows))
	for y, row := range rows {
		grid[y] = make([]Tile, len(row))
		for x, ch := range row {
			if ch == '#' {
				grid[y][x] = TileWall
			} else {
				grid[y][x] = TileFloor
			}
		}
	}
	return grid
}
