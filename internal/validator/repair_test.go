package validator_test

import (
	"strings"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

func hasIssueContaining(issues []string, word string) bool {
	for _, issue := range issues {
		if strings.Contains(strings.ToLower(issue), word) {
			return true
		}
	}
	return false
}

func (s *ValidatorTestSuite) TestRepairConnectsIslands() {
	data := islands()
	original := data.Grid.Clone()
	result := s.validator.ValidateStructure(data)
	s.Require().True(hasIssueContaining(result.Issues, "connectivity"))

	repaired, after := s.validator.Repair(data, result)

	s.True(pathing.Reachable(repaired.Grid, entities.Point{X: 1, Y: 1}, entities.Point{X: 8, Y: 1}))
	s.False(hasIssueContaining(after.Issues, "connectivity"))
	s.Contains(after.RepairHistory, "Attempt 1: Fixed connectivity issues")
	s.LessOrEqual(len(after.Issues), len(result.Issues))
	s.Equal(validator.ScopeStructure, after.Scope)
	s.Equal(original, data.Grid, "input is not mutated")
	s.Empty(validator.BoundaryViolations(repaired.Grid))
}

func (s *ValidatorTestSuite) TestRepairIsDeterministicForASeededRoller() {
	run := func() entities.Grid {
		data := islands()
		data.Roller = rng.NewStream(42)
		repaired, _ := s.validator.Repair(data, s.validator.ValidateStructure(data))
		return repaired.Grid
	}

	s.Equal(run(), run())
}

func (s *ValidatorTestSuite) TestRepairSealsOpenBoundary() {
	data := validLevel()
	for x := range data.Grid[0] {
		data.Grid[0][x] = entities.TileFloor
		data.Grid[7][x] = entities.TileFloor
	}
	data.Areas = nil
	data.TerrainGrid = nil
	result := s.validator.ValidateStructure(data)
	before := len(validator.BoundaryViolations(data.Grid))
	s.Require().Equal(44, before)

	repaired, after := s.validator.Repair(data, result)

	remaining := len(validator.BoundaryViolations(repaired.Grid))
	s.Less(remaining, before)
	s.LessOrEqual(remaining, 4*s.thresholds().BoundaryExits)
	s.Contains(after.RepairHistory, "Attempt 1: Fixed boundary gaps")
}

func (s *ValidatorTestSuite) TestRepairIgnoresNearlySealedBoundary() {
	data := validLevel()
	data.Grid[0][5] = entities.TileFloor
	data.Grid[0][6] = entities.TileFloor
	data.Areas = nil
	result := s.validator.ValidateStructure(data)
	s.Require().Len(result.Issues, 2)

	repaired, after := s.validator.Repair(data, result)

	s.Equal(data.Grid, repaired.Grid)
	s.Empty(after.RepairHistory)
	s.Equal(1, after.Metrics.RepairAttempts)
}

func (s *ValidatorTestSuite) TestRepairMovesUnsafeSpawn() {
	data := validLevel()
	data.SpawnPoints = []entities.Point{{X: 0, Y: 0}}
	data.Areas = nil
	result := s.validator.ValidateStructure(data)
	s.Require().Contains(result.Issues, "Spawn point 0 (0, 0) is not on floor")

	repaired, after := s.validator.Repair(data, result)

	s.Equal([]entities.Point{{X: 1, Y: 1}}, repaired.SpawnPoints)
	s.True(after.IsValid, "issues: %v", after.Issues)
	s.Equal([]entities.Point{{X: 0, Y: 0}}, data.SpawnPoints)
}

func (s *ValidatorTestSuite) TestRepairExpandsSmallRooms() {
	data := validLevel()
	data.Rooms = append(data.Rooms,
		&entities.Room{Rect: entities.Rect{X: 8, Y: 4, Width: 1, Height: 1}},
		&entities.Room{Rect: entities.Rect{X: 9, Y: 4, Width: 2, Height: 1}},
	)
	data.Areas = nil
	result := s.validator.ValidateStructure(data)
	s.Require().Contains(result.Issues, "Inaccessible rooms found: 2")

	repaired, after := s.validator.Repair(data, result)

	s.Contains(after.RepairHistory, "Attempt 1: Fixed room issues")
	s.Equal(3, repaired.Rooms[2].Width)
	s.Equal(3, repaired.Rooms[2].Height)
	s.True(repaired.Grid.IsFloor(8, 4))
	s.NotContains(after.Issues, "Inaccessible rooms found: 2")
	s.Equal(1, data.Rooms[2].Width)
}

func (s *ValidatorTestSuite) TestRepairRemovesIsolatedTiles() {
	grid := twoRooms()
	// single floor cells walled in on all sides
	grid[5][9] = entities.TileFloor
	grid[1][11] = entities.TileFloor
	data := validLevel()
	data.Grid = grid
	data.TerrainGrid = nil
	data.Areas = nil

	th := validator.DefaultThresholds()
	th.SmallComponentRatio = 0.01
	v := s.withThresholds(th)
	result := v.ValidateStructure(data)
	s.Require().Contains(result.Issues, "Too many isolated small areas: 2")

	repaired, after := v.Repair(data, result)

	s.True(repaired.Grid.IsWall(9, 5))
	s.True(repaired.Grid.IsWall(11, 1))
	s.Contains(after.RepairHistory, "Attempt 1: Removed isolated tiles")
	s.True(after.IsValid, "issues: %v", after.Issues)
}

func (s *ValidatorTestSuite) TestRepairTerminatesAndNeverIncreasesIssues() {
	testCases := []struct {
		name string
		data *validator.LevelData
	}{
		{name: "ragged", data: &validator.LevelData{Grid: entities.ParseGrid("###", "#.")}},
		{name: "all wall", data: &validator.LevelData{Grid: entities.NewGrid(12, 8, entities.TileWall)}},
		{name: "all floor", data: &validator.LevelData{Grid: entities.NewGrid(12, 8, entities.TileFloor)}},
		{name: "islands with objective", data: func() *validator.LevelData {
			d := islands()
			d.ObjectivePos = pixel(7, 2)
			return d
		}()},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := s.validator.Validate(tc.data)

			_, after := s.validator.Repair(tc.data, result)

			s.LessOrEqual(len(after.Issues), len(result.Issues))
			s.LessOrEqual(after.Metrics.RepairAttempts, s.thresholds().RepairAttempts)
		})
	}
}

func (s *ValidatorTestSuite) TestRepairValidInputIsUntouched() {
	data := validLevel()
	result := s.validator.Validate(data)
	s.Require().True(result.IsValid)

	repaired, after := s.validator.Repair(data, result)

	s.Same(data, repaired)
	s.True(after.IsValid)
	s.NotSame(result, after)
}

func (s *ValidatorTestSuite) withThresholds(th validator.Thresholds) *validator.Validator {
	v, err := validator.New(&validator.Config{
		TerrainRegistry: s.terrains,
		AreaRegistry:    areas.NewDefaultRegistry(s.terrains),
		Thresholds:      &th,
	})
	s.Require().NoError(err)
	return v
}

func (s *ValidatorTestSuite) thresholds() validator.Thresholds {
	return s.validator.Thresholds()
}
