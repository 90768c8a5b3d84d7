package validator

import (
	"fmt"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
)

// BoundaryViolations lists every outer-ring tile that is not wall, top and
// bottom rows first, then the left and right columns
func BoundaryViolations(grid entities.Grid) []string {
	var issues []string
	h, w := grid.Height(), grid.Width()

	for x := 0; x < w; x++ {
		if grid[0][x] != entities.TileWall {
			issues = append(issues, fmt.Sprintf("Top boundary at (%d, 0) is not a wall - must be sealed", x))
		}
		if grid[h-1][x] != entities.TileWall {
			issues = append(issues, fmt.Sprintf("Bottom boundary at (%d, %d) is not a wall - must be sealed", x, h-1))
		}
	}
	for y := 0; y < h; y++ {
		if grid[y][0] != entities.TileWall {
			issues = append(issues, fmt.Sprintf("Left boundary at (0, %d) is not a wall - must be sealed", y))
		}
		if grid[y][w-1] != entities.TileWall {
			issues = append(issues, fmt.Sprintf("Right boundary at (%d, %d) is not a wall - must be sealed", w-1, y))
		}
	}
	return issues
}

func (v *Validator) checkBoundaries(p *pass) {
	p.add(BoundaryViolations(p.data.Grid)...)
}

func (v *Validator) checkConnectivity(p *pass) {
	grid := p.data.Grid
	floor := grid.Count(entities.TileFloor)
	if floor == 0 {
		p.add("No floor tiles found")
		return
	}

	components := pathing.Components(grid)
	largest, _ := pathing.Largest(components)
	ratio := float64(largest.Size()) / float64(floor)
	p.metrics.Components = len(components)
	p.metrics.ConnectivityRatio = ratio

	if ratio < v.thresholds.MinConnectivityRatio {
		p.add(fmt.Sprintf("Poor connectivity: only %.1f%% of floor is connected", ratio*100))
	}

	small := 0
	for _, c := range components {
		if c.Size() < v.thresholds.SmallComponentSize {
			small++
		}
	}
	if float64(small) > float64(floor)*v.thresholds.SmallComponentRatio {
		p.add(fmt.Sprintf("Too many isolated small areas: %d", small))
	}
}

func (v *Validator) checkRooms(p *pass) {
	rooms := p.data.Rooms
	if len(rooms) == 0 {
		p.add("No rooms defined for level")
		return
	}

	small, inaccessible := 0, 0
	for _, room := range rooms {
		if room.Width < v.thresholds.MinRoomSize || room.Height < v.thresholds.MinRoomSize {
			small++
		}
		if !roomHasFloor(p.data.Grid, room) {
			inaccessible++
		}
	}

	if float64(small) > float64(len(rooms))*0.5 {
		p.add(fmt.Sprintf("Too many small rooms: %d/%d", small, len(rooms)))
	}
	if inaccessible > 0 {
		p.add(fmt.Sprintf("Inaccessible rooms found: %d", inaccessible))
	}

	style := p.data.Style
	if style == "" {
		style = defaultStyle
	}
	if style == entities.StyleDungeon && len(rooms) < 2 {
		p.add("Insufficient rooms for dungeon level")
	}
}

func roomHasFloor(grid entities.Grid, room *entities.Room) bool {
	for y := max(0, room.Y); y < min(grid.Height(), room.Y+room.Height); y++ {
		for x := max(0, room.X); x < min(grid.Width(), room.X+room.Width); x++ {
			if grid[y][x] == entities.TileFloor {
				return true
			}
		}
	}
	return false
}

// checkPaths samples floor pairs spread across the row-major floor list,
// pairing the i-th tile from the front with the i-th from the back
func (v *Validator) checkPaths(p *pass) {
	floor := p.data.Grid.FloorTiles()
	if len(floor) < 2 {
		p.add("Insufficient floor tiles for path validation")
		return
	}

	samples := min(v.thresholds.PathSamples, len(floor)/2)
	step := max(1, len(floor)/(2*samples))
	ok := 0
	for i := 0; i < samples; i++ {
		from := floor[i*step]
		to := floor[len(floor)-1-i*step]
		if pathing.Reachable(p.data.Grid, from, to) {
			ok++
		}
	}

	rate := float64(ok) / float64(samples)
	p.metrics.PathSuccessRate = rate
	if rate < v.thresholds.MinPathSuccess {
		p.add(fmt.Sprintf("Poor pathfinding: only %.1f%% paths valid", rate*100))
	}
}
