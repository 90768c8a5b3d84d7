package validator

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/cespare/xxhash/v2"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
)

// Repair categories, matched against issue text in this order
const (
	fixBoundary     = "boundary"
	fixConnectivity = "connectivity"
	fixIsolated     = "isolated"
	fixSpawn        = "spawn"
	fixRoom         = "room"
)

var connectivityKeywords = []string{"connectivity", "pathfinding", "not reachable", "no reachable"}

func category(issue string) string {
	s := strings.ToLower(issue)
	switch {
	case strings.Contains(s, fixBoundary):
		return fixBoundary
	case containsAny(s, connectivityKeywords):
		return fixConnectivity
	case strings.Contains(s, fixIsolated):
		return fixIsolated
	case strings.Contains(s, fixSpawn):
		return fixSpawn
	case strings.Contains(s, fixRoom):
		return fixRoom
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Repair runs bounded fix attempts against a copy of data. Each attempt
// applies at most one fix per category, then re-validates with the scope of
// the given result. The loop ends early when an attempt changes nothing.
// The snapshot with the fewest issues is returned, so the issue count never
// exceeds the input's; it may still be invalid.
func (v *Validator) Repair(data *LevelData, result *Result) (*LevelData, *Result) {
	if data == nil {
		data = &LevelData{}
	}
	if result == nil {
		result = v.Validate(data)
	}
	if result.IsValid || len(basicStructure(data.Grid)) > 0 {
		out := *result
		return data, &out
	}

	scope := result.Scope
	if scope == "" {
		scope = ScopeFull
	}
	roller := data.Roller
	if roller == nil {
		roller = rng.NewStream(rng.PurposeSeed(xxhash.Sum64String(data.Grid.String()), rng.PurposeRepair))
	}

	current := data.Clone()
	best, bestResult := data, result
	var history []string
	attempts := 0

	for attempts < v.thresholds.RepairAttempts && len(result.Issues) > 0 {
		attempts++
		applied := v.applyFixes(current, result.Issues, roller)
		for _, fix := range applied {
			slog.Debug("Repair applied", "attempt", attempts, "fix", fix)
			history = append(history, fmt.Sprintf("Attempt %d: %s", attempts, fix))
		}
		if len(applied) == 0 {
			break
		}

		result = v.validate(current, scope)
		if len(result.Issues) < len(bestResult.Issues) {
			best, bestResult = current.Clone(), result
		}
	}

	out := *bestResult
	out.RepairHistory = history
	out.Metrics.RepairAttempts = attempts
	return best, &out
}

func (v *Validator) applyFixes(data *LevelData, issues []string, roller dice.Roller) []string {
	tried := mapset.New[string]()
	var applied []string

	for _, issue := range issues {
		cat := category(issue)
		if cat == "" || tried.Has(cat) {
			continue
		}
		tried.Put(cat)

		switch cat {
		case fixBoundary:
			if v.repairBoundaries(data.Grid, roller) {
				applied = append(applied, "Fixed boundary gaps")
			}
		case fixConnectivity:
			if repairConnectivity(data.Grid, roller) {
				applied = append(applied, "Fixed connectivity issues")
			}
		case fixIsolated:
			if repairIsolated(data.Grid) {
				applied = append(applied, "Removed isolated tiles")
			}
		case fixSpawn:
			if v.repairSpawnPoints(data) {
				applied = append(applied, "Fixed spawn points")
			}
		case fixRoom:
			if v.repairRooms(data) {
				applied = append(applied, "Fixed room issues")
			}
		}
	}
	return applied
}

// repairBoundaries seals the outer ring except for a few exit indices, shared
// by rows and columns. Nothing happens while the gap count is at or under
// the threshold.
func (v *Validator) repairBoundaries(grid entities.Grid, roller dice.Roller) bool {
	if len(BoundaryViolations(grid)) <= v.thresholds.BoundaryRepairThreshold {
		return false
	}

	h, w := grid.Height(), grid.Width()
	exits := pickExits(roller, min(w, h), v.thresholds.BoundaryExits)
	changed := false
	seal := func(x, y int) {
		if grid[y][x] != entities.TileWall {
			grid[y][x] = entities.TileWall
			changed = true
		}
	}

	for x := 0; x < w; x++ {
		if !exits.Has(x) {
			seal(x, 0)
			seal(x, h-1)
		}
	}
	for y := 0; y < h; y++ {
		if !exits.Has(y) {
			seal(0, y)
			seal(w-1, y)
		}
	}
	return changed
}

// pickExits samples k distinct indices from [0, n)
func pickExits(roller dice.Roller, n, k int) mapset.Set[int] {
	out := mapset.New[int]()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < min(k, n); i++ {
		j := i + rng.Intn(roller, n-i)
		idx[i], idx[j] = idx[j], idx[i]
		out.Put(idx[i])
	}
	return out
}

// repairConnectivity joins the two largest components with an L-shaped
// tunnel between their nearest tiles
func repairConnectivity(grid entities.Grid, roller dice.Roller) bool {
	first, second := pathing.Largest(pathing.Components(grid))
	if second == nil {
		return false
	}
	a, b, ok := nearestPair(grid, first, second)
	if !ok {
		return false
	}
	return CarveTunnel(grid, a, b, rng.Percent(roller, 50))
}

// nearestPair floods outward from every tile of b across all cells, walls
// included, so the first tile of a reached is at minimum Manhattan distance
func nearestPair(grid entities.Grid, a, b *pathing.Component) (from, to entities.Point, ok bool) {
	origin := make(map[entities.Point]entities.Point, b.Size())
	q := queue.New[entities.Point]()
	for _, t := range b.Tiles {
		origin[t] = t
		q.Enqueue(t)
	}

	for !q.Empty() {
		cur := q.Dequeue()
		if a.Contains(cur) {
			return cur, origin[cur], true
		}
		for _, n := range cur.Neighbors4() {
			if !grid.InBounds(n.X, n.Y) {
				continue
			}
			if _, seen := origin[n]; seen {
				continue
			}
			origin[n] = origin[cur]
			q.Enqueue(n)
		}
	}
	return entities.Point{}, entities.Point{}, false
}

// CarveTunnel opens an L-shaped floor path from a to b, either horizontal
// then vertical or the reverse. Only interior cells are carved. Reports
// whether any wall was opened.
func CarveTunnel(grid entities.Grid, a, b entities.Point, horizontalFirst bool) bool {
	changed := false
	carve := func(x, y int) {
		if grid.IsInterior(x, y) && grid[y][x] != entities.TileFloor {
			grid[y][x] = entities.TileFloor
			changed = true
		}
	}
	x, y := a.X, a.Y
	stepX := func() {
		for x != b.X {
			carve(x, y)
			x += sign(b.X - x)
		}
	}
	stepY := func() {
		for y != b.Y {
			carve(x, y)
			y += sign(b.Y - y)
		}
	}

	if horizontalFirst {
		stepX()
		stepY()
	} else {
		stepY()
		stepX()
	}
	carve(b.X, b.Y)
	return changed
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func repairIsolated(grid entities.Grid) bool {
	isolated := isolatedTiles(grid)
	for _, pt := range isolated {
		grid[pt.Y][pt.X] = entities.TileWall
	}
	return len(isolated) > 0
}

// repairSpawnPoints drops unsafe spawns, then tops up from the first safe
// interior tiles in row-major order
func (v *Validator) repairSpawnPoints(data *LevelData) bool {
	grid := data.Grid
	changed := false
	kept := make([]entities.Point, 0, len(data.SpawnPoints))
	for _, sp := range data.SpawnPoints {
		if v.SafeSpawn(grid, sp) {
			kept = append(kept, sp)
		} else {
			changed = true
		}
	}

search:
	for y := 1; y < grid.Height()-1 && len(kept) < v.thresholds.MinSpawnPoints; y++ {
		for x := 1; x < grid.Width()-1; x++ {
			pt := entities.Point{X: x, Y: y}
			if !v.SafeSpawn(grid, pt) || slices.Contains(kept, pt) {
				continue
			}
			kept = append(kept, pt)
			changed = true
			if len(kept) >= v.thresholds.MinSpawnPoints {
				break search
			}
		}
	}

	if changed {
		data.SpawnPoints = kept
	}
	return changed
}

// repairRooms grows undersized rooms to the minimum and carves floor in
// them; rooms with no floor at all are carved too
func (v *Validator) repairRooms(data *LevelData) bool {
	grid := data.Grid
	minSize := v.thresholds.MinRoomSize
	changed := false

	for _, room := range data.Rooms {
		small := room.Width < minSize || room.Height < minSize
		if !small && roomHasFloor(grid, room) {
			continue
		}
		if small {
			room.Width = max(minSize, room.Width)
			room.Height = max(minSize, room.Height)
			changed = true
		}
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if grid.IsInterior(x, y) && grid[y][x] != entities.TileFloor {
					grid[y][x] = entities.TileFloor
					changed = true
				}
			}
		}
	}
	return changed
}
