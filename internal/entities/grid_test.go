package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

type GridTestSuite struct {
	suite.Suite
}

func TestGridSuite(t *testing.T) {
	suite.Run(t, new(GridTestSuite))
}

func (s *GridTestSuite) TestParseAndQuery() {
	grid := entities.ParseGrid(
		"#####",
		"#..##",
		"#####",
	)

	s.Equal(5, grid.Width())
	s.Equal(3, grid.Height())
	s.True(grid.IsFloor(1, 1))
	s.False(grid.IsFloor(3, 1))
	s.False(grid.IsFloor(-1, 0))
	s.True(grid.IsWall(-1, 0), "out of bounds counts as wall")
	s.True(grid.IsInterior(1, 1))
	s.False(grid.IsInterior(0, 1))
	s.Equal(2, grid.Count(entities.TileFloor))
	s.Equal([]entities.Point{{X: 1, Y: 1}, {X: 2, Y: 1}}, grid.FloorTiles())
	s.Equal("#####\n#..##\n#####\n", grid.String())
}

func (s *GridTestSuite) TestCloneIsDeep() {
	grid := entities.NewGrid(3, 3, entities.TileWall)
	clone := grid.Clone()
	clone.Set(1, 1, entities.TileFloor)

	s.Equal(entities.TileWall, grid[1][1])
	s.Equal(1, grid.Diff(clone))
}

func (s *GridTestSuite) TestDiffShapeMismatch() {
	a := entities.NewGrid(2, 2, entities.TileWall)
	b := entities.NewGrid(3, 2, entities.TileWall)
	s.Equal(2, a.Diff(b))
}

func (s *GridTestSuite) TestRectContainsIsHalfOpen() {
	r := entities.Rect{X: 2, Y: 3, Width: 2, Height: 1}

	s.True(r.Contains(2, 3))
	s.True(r.Contains(3, 3))
	s.False(r.Contains(4, 3))
	s.False(r.Contains(2, 4))
	s.False(r.Contains(1, 3))
}

func (s *GridTestSuite) TestRectIntersectsAndInflate() {
	a := entities.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := entities.Rect{X: 10, Y: 0, Width: 5, Height: 5}

	s.False(a.Intersects(b), "touching edges do not overlap")
	s.True(a.Inflate(1, 0).Intersects(b))
	s.Equal(entities.Rect{X: -2, Y: -1, Width: 14, Height: 12}, a.Inflate(2, 1))
}

func (s *GridTestSuite) TestRectClamp() {
	r := entities.Rect{X: -1, Y: 8, Width: 3, Height: 3}
	s.Equal(entities.Rect{X: 0, Y: 7, Width: 3, Height: 3}, r.Clamp(10, 10))
}

func (s *GridTestSuite) TestEnemyTileRoundTrip() {
	enemy := entities.NewEnemyAt("e1", "Bug", entities.Point{X: 4, Y: 7}, 24)

	s.Equal(4*24+12, enemy.X)
	s.Equal(entities.Point{X: 4, Y: 7}, enemy.Tile(24))
	s.Equal(entities.Rect{X: enemy.X - 14, Y: enemy.Y - 11, Width: 28, Height: 22}, enemy.Footprint())
	s.Equal("Bug", enemy.GetType())
}

func (s *GridTestSuite) TestEnemyProfiles() {
	bee, ok := entities.LookupEnemyProfile("Bee")
	s.Require().True(ok)
	s.Equal(entities.LabelEnemyFlying, bee.SpawnLabel())

	frog, _ := entities.LookupEnemyProfile("Frog")
	s.Equal(entities.LabelEnemyAmphibious, frog.SpawnLabel())

	bug, _ := entities.LookupEnemyProfile("Bug")
	s.Equal(entities.LabelEnemyGround, bug.SpawnLabel())

	_, ok = entities.LookupEnemyProfile("Dragon")
	s.False(ok)
	s.Len(entities.EnemyTypes(), 8)
}
