package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
)

func TestCategory(t *testing.T) {
	testCases := []struct {
		issue string
		want  string
	}{
		{"Top boundary at (3, 0) is not a wall - must be sealed", fixBoundary},
		{"Poor connectivity: only 50.0% of floor is connected", fixConnectivity},
		{"Poor pathfinding: only 20.0% paths valid", fixConnectivity},
		{"Portal at (10, 3) is not reachable from player spawn (3, 3)", fixConnectivity},
		{"No reachable enemies found - found 2 enemies but none are reachable from player spawn", fixConnectivity},
		{"Too many isolated small areas: 4", fixIsolated},
		{"Spawn point 0 (0, 0) is not on floor", fixSpawn},
		{"Inaccessible rooms found: 1", fixRoom},
		{"Insufficient combat areas: 1", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.issue, func(t *testing.T) {
			assert.Equal(t, tc.want, category(tc.issue))
		})
	}
}

func TestCarveTunnel(t *testing.T) {
	grid := entities.NewGrid(8, 6, entities.TileWall)

	changed := CarveTunnel(grid, entities.Point{X: 1, Y: 1}, entities.Point{X: 5, Y: 4}, true)

	require.True(t, changed)
	assert.Equal(t, "########\n"+
		"#.....##\n"+
		"#####.##\n"+
		"#####.##\n"+
		"#####.##\n"+
		"########\n", grid.String())

	assert.False(t, CarveTunnel(grid, entities.Point{X: 1, Y: 1}, entities.Point{X: 5, Y: 4}, true))
}

func TestCarveTunnelVerticalFirstStaysInside(t *testing.T) {
	grid := entities.NewGrid(6, 5, entities.TileWall)

	CarveTunnel(grid, entities.Point{X: 0, Y: 0}, entities.Point{X: 4, Y: 3}, false)

	assert.Equal(t, "######\n"+
		"######\n"+
		"######\n"+
		"#....#\n"+
		"######\n", grid.String())
}

func TestLineOfSight(t *testing.T) {
	grid := entities.ParseGrid(
		"#######",
		"#.....#",
		"#..#..#",
		"#.....#",
		"#######",
	)

	assert.True(t, LineOfSight(grid, entities.Point{X: 1, Y: 1}, entities.Point{X: 5, Y: 1}))
	assert.False(t, LineOfSight(grid, entities.Point{X: 1, Y: 2}, entities.Point{X: 5, Y: 2}))
	assert.False(t, LineOfSight(grid, entities.Point{X: 0, Y: 0}, entities.Point{X: 1, Y: 1}))
}

func TestPickExits(t *testing.T) {
	exits := pickExits(rng.NewStream(7), 8, 2)
	assert.Equal(t, 2, exits.Size())
	exits.Each(func(i int) {
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 8)
	})

	assert.Equal(t, 3, pickExits(rng.NewStream(7), 3, 5).Size())
}

func TestSuggestions(t *testing.T) {
	assert.Nil(t, Suggestions(nil, entities.StyleDungeon))

	got := Suggestions([]string{"Insufficient rooms for dungeon level", "Enemy 0 (Bug) cannot reach player"}, entities.StyleDungeon)
	assert.Equal(t, []string{
		"Increase minimum room size or add more rooms",
		"Check enemy spawn positions and ensure they can reach the player",
		"Dungeon levels should have multiple connected rooms",
	}, got)
}

func TestNearestPair(t *testing.T) {
	grid := entities.ParseGrid(
		"##########",
		"#..#######",
		"#..#######",
		"######..##",
		"######..##",
		"##########",
	)
	a := componentAt(t, grid, entities.Point{X: 1, Y: 1})
	b := componentAt(t, grid, entities.Point{X: 6, Y: 3})

	from, to, ok := nearestPair(grid, a, b)

	require.True(t, ok)
	assert.Equal(t, entities.Point{X: 2, Y: 2}, from)
	assert.Equal(t, entities.Point{X: 6, Y: 3}, to)
}

func componentAt(t *testing.T, grid entities.Grid, p entities.Point) *pathing.Component {
	t.Helper()
	for _, c := range pathing.Components(grid) {
		if c.Contains(p) {
			return c
		}
	}
	require.FailNow(t, "no component", "no component holds %v", p)
	return nil
}
