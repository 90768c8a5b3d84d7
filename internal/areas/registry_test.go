package areas_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

type RegistryTestSuite struct {
	suite.Suite
	terrains *terrain.Registry
	registry *areas.Registry
	floor    [][]string
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.terrains = terrain.NewDefaultRegistry()
	s.registry = areas.NewDefaultRegistry(s.terrains)
	s.floor = filledTerrain(10, 10, terrain.FloorNormal)
}

func filledTerrain(w, h int, id string) [][]string {
	out := make([][]string, h)
	for y := range out {
		out[y] = make([]string, w)
		for x := range out[y] {
			out[y][x] = id
		}
	}
	return out
}

func (s *RegistryTestSuite) lookup(grid [][]string) areas.TerrainLookup {
	return s.terrains.Lookup(grid)
}

func (s *RegistryTestSuite) TestDefaultsRegistered() {
	s.Equal([]string{
		areas.TypeFlyingEnemyZone,
		areas.TypeGroundEnemyZone,
		areas.TypeMerchantZone,
		areas.TypeObjectiveZone,
		areas.TypePlayerStart,
		areas.TypeWaterZone,
	}, s.registry.Types())
}

func (s *RegistryTestSuite) TestRegisterRequiresName() {
	err := s.registry.Register(&areas.TypeDefinition{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestRegisterOverwrites() {
	s.Require().NoError(s.registry.Register(&areas.TypeDefinition{
		Name:    areas.TypeObjectiveZone,
		MinSize: areas.Size{Width: 1, Height: 1},
	}))

	def, err := s.registry.Get(areas.TypeObjectiveZone)
	s.Require().NoError(err)
	s.Equal(1, def.MinSize.Width)
}

func (s *RegistryTestSuite) TestGetUnknownFailsLoudly() {
	_, err := s.registry.Get("boss-arena")
	s.True(errors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestObjectiveZoneTooSmall() {
	area := &entities.Area{ID: "goal", Type: areas.TypeObjectiveZone, Rect: entities.Rect{X: 1, Y: 1, Width: 2, Height: 2}}

	issues := s.registry.ValidateArea(area, &areas.Context{}, s.lookup(s.floor))

	s.Require().Len(issues, 1)
	s.Contains(issues[0], "too small")
	s.Contains(issues[0], "minimum 3x3")
}

func (s *RegistryTestSuite) TestMaxSize() {
	s.Require().NoError(s.registry.Register(&areas.TypeDefinition{
		Name:    "closet",
		MinSize: areas.Size{Width: 1, Height: 1},
		MaxSize: &areas.Size{Width: 2, Height: 2},
	}))

	area := &entities.Area{ID: "c", Type: "closet", Rect: entities.Rect{Width: 3, Height: 1}}
	issues := s.registry.ValidateArea(area, nil, nil)
	s.Require().Len(issues, 1)
	s.Contains(issues[0], "too large")
}

func (s *RegistryTestSuite) TestRequiredBaseReportsFirstTileOnly() {
	grid := filledTerrain(10, 10, terrain.FloorNormal)
	grid[2][3] = terrain.WallSolid
	grid[3][3] = terrain.Water
	area := &entities.Area{ID: "goal", Type: areas.TypeObjectiveZone, Rect: entities.Rect{X: 2, Y: 2, Width: 3, Height: 3}}

	issues := s.registry.ValidateArea(area, nil, s.lookup(grid))

	s.Require().Len(issues, 1)
	s.Contains(issues[0], "(3,2)")
	s.Contains(issues[0], "base 'wall'")
}

func (s *RegistryTestSuite) TestFlyingZoneIsUnconstrained() {
	grid := filledTerrain(4, 4, terrain.WallSolid)
	area := &entities.Area{ID: "sky", Type: areas.TypeFlyingEnemyZone, Rect: entities.Rect{Width: 2, Height: 2}}

	s.Empty(s.registry.ValidateArea(area, nil, s.lookup(grid)))
}

func (s *RegistryTestSuite) TestForbiddenSpawns() {
	area := &entities.Area{ID: "goal", Type: areas.TypeObjectiveZone, Rect: entities.Rect{X: 0, Y: 0, Width: 3, Height: 3}}
	ctx := &areas.Context{Spawns: []entities.EntitySpawn{
		{Label: entities.LabelObjective, X: 1, Y: 1},
		{Label: entities.LabelEnemyGround, X: 2, Y: 2},
		{Label: entities.LabelEnemyGround, X: 5, Y: 5},
	}}

	issues := s.registry.ValidateArea(area, ctx, s.lookup(s.floor))

	s.Require().Len(issues, 2)
	s.Contains(issues[0], "forbidden spawn 'enemy_ground' at (2,2)")
	s.Equal("Zone 'goal' must not contain enemy spawns (found 1)", issues[1])
}

func (s *RegistryTestSuite) TestMerchantRules() {
	area := &entities.Area{ID: "shop", Type: areas.TypeMerchantZone, Rect: entities.Rect{X: 0, Y: 0, Width: 4, Height: 2}}
	ctx := &areas.Context{Spawns: []entities.EntitySpawn{
		{Label: entities.LabelMerchant, X: 0, Y: 0},
		{Label: entities.LabelMerchant, X: 1, Y: 0},
		{Label: entities.LabelEnemyWater, X: 2, Y: 1},
	}}

	issues := s.registry.ValidateArea(area, ctx, s.lookup(s.floor))

	s.Require().Len(issues, 2)
	s.Contains(issues[0], "2 merchant spawns")
	s.Contains(issues[1], "must not contain enemy spawns (found 1)")
}

func (s *RegistryTestSuite) TestFaultyRulesBecomeIssues() {
	s.Require().NoError(s.registry.Register(&areas.TypeDefinition{
		Name:    "fragile",
		MinSize: areas.Size{Width: 1, Height: 1},
		Rules: []areas.Rule{
			areas.RuleFunc{RuleName: "errors", Fn: func(*areas.Context, *entities.Area, areas.TerrainLookup) ([]string, error) {
				return nil, fmt.Errorf("lookup table missing")
			}},
			areas.RuleFunc{RuleName: "panics", Fn: func(*areas.Context, *entities.Area, areas.TerrainLookup) ([]string, error) {
				panic("nil map")
			}},
			areas.RuleFunc{RuleName: "works", Fn: func(*areas.Context, *entities.Area, areas.TerrainLookup) ([]string, error) {
				return []string{"custom issue"}, nil
			}},
		},
	}))

	area := &entities.Area{ID: "f", Type: "fragile", Rect: entities.Rect{Width: 1, Height: 1}}
	issues := s.registry.ValidateArea(area, nil, nil)

	s.Equal([]string{
		"Area 'f' (fragile) rule 'errors' failed: lookup table missing",
		"Area 'f' (fragile) rule 'panics' failed: nil map",
		"custom issue",
	}, issues)
}

func (s *RegistryTestSuite) TestUnknownAreaTypeIsAnIssue() {
	area := &entities.Area{ID: "x", Type: "boss-arena", Rect: entities.Rect{Width: 1, Height: 1}}
	issues := s.registry.ValidateArea(area, nil, nil)
	s.Equal([]string{"Area 'x' has unknown type 'boss-arena'"}, issues)
}

func (s *RegistryTestSuite) TestValidateLevelAreas() {
	m := entities.NewAreaMap(
		&entities.Area{ID: "goal", Type: areas.TypeObjectiveZone, Rect: entities.Rect{Width: 2, Height: 2}},
		&entities.Area{ID: "start", Type: areas.TypePlayerStart, Rect: entities.Rect{X: 5, Y: 5, Width: 1, Height: 1}},
	)

	s.Nil(s.registry.ValidateLevelAreas(m, nil, nil), "no terrain grid short-circuits")

	issues := s.registry.ValidateLevelAreas(m, nil, s.floor)
	s.Require().Len(issues, 1)
	s.Contains(issues[0], "Area 'goal'")
}
