// Package pathing provides 4-connected BFS reachability and flood-fill
// components over a level grid.
package pathing

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

// Reachable reports whether a floor path joins from and to.
// Endpoints that are out of bounds or walls are unreachable.
func Reachable(grid entities.Grid, from, to entities.Point) bool {
	if !grid.IsFloor(from.X, from.Y) || !grid.IsFloor(to.X, to.Y) {
		return false
	}
	if from == to {
		return true
	}
	return ReachableSet(grid, from)[to.Y][to.X]
}

// ReachableSet floods from a start tile and marks every reachable floor tile.
// The result has the grid's shape; a wall or out-of-bounds start marks nothing.
func ReachableSet(grid entities.Grid, from entities.Point) [][]bool {
	seen := make([][]bool, grid.Height())
	for y := range seen {
		seen[y] = make([]bool, len(grid[y]))
	}
	if !grid.IsFloor(from.X, from.Y) {
		return seen
	}
	flood(grid, from, seen, nil)
	return seen
}

// Distances returns BFS step counts from a start tile; unreachable tiles are -1
func Distances(grid entities.Grid, from entities.Point) [][]int {
	dist := make([][]int, grid.Height())
	for y := range dist {
		dist[y] = make([]int, len(grid[y]))
		for x := range dist[y] {
			dist[y][x] = -1
		}
	}
	if !grid.IsFloor(from.X, from.Y) {
		return dist
	}

	q := queue.New[entities.Point]()
	q.Enqueue(from)
	dist[from.Y][from.X] = 0
	for !q.Empty() {
		cur := q.Dequeue()
		for _, n := range cur.Neighbors4() {
			if grid.IsFloor(n.X, n.Y) && dist[n.Y][n.X] < 0 {
				dist[n.Y][n.X] = dist[cur.Y][cur.X] + 1
				q.Enqueue(n)
			}
		}
	}
	return dist
}

// Component is a maximal set of 4-connected floor tiles
type Component struct {
	// Tiles in BFS discovery order; Tiles[0] is the row-major first tile
	Tiles   []entities.Point
	members mapset.Set[entities.Point]
}

// Size returns the tile count
func (c *Component) Size() int {
	return len(c.Tiles)
}

// Contains reports membership
func (c *Component) Contains(p entities.Point) bool {
	return c.members.Has(p)
}

// Components flood-fills every floor tile, discovering components in
// row-major order of their first tile.
func Components(grid entities.Grid) []*Component {
	seen := make([][]bool, grid.Height())
	for y := range seen {
		seen[y] = make([]bool, len(grid[y]))
	}

	var out []*Component
	for y, row := range grid {
		for x, cell := range row {
			if cell != entities.TileFloor || seen[y][x] {
				continue
			}
			c := &Component{members: mapset.New[entities.Point]()}
			flood(grid, entities.Point{X: x, Y: y}, seen, func(p entities.Point) {
				c.Tiles = append(c.Tiles, p)
				c.members.Put(p)
			})
			out = append(out, c)
		}
	}
	return out
}

// Largest returns the two biggest components, first wins ties.
// Either result may be nil when fewer components exist.
func Largest(components []*Component) (first, second *Component) {
	for _, c := range components {
		switch {
		case first == nil || c.Size() > first.Size():
			second = first
			first = c
		case second == nil || c.Size() > second.Size():
			second = c
		}
	}
	return first, second
}

func flood(grid entities.Grid, start entities.Point, seen [][]bool, visit func(entities.Point)) {
	q := queue.New[entities.Point]()
	q.Enqueue(start)
	seen[start.Y][start.X] = true
	for !q.Empty() {
		cur := q.Dequeue()
		if visit != nil {
			visit(cur)
		}
		for _, n := range cur.Neighbors4() {
			if grid.IsFloor(n.X, n.Y) && !seen[n.Y][n.X] {
				seen[n.Y][n.X] = true
				q.Enqueue(n)
			}
		}
	}
}
