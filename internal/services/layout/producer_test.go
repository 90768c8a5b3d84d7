package layout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/pathing"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-levelgen/internal/services/layout"
)

type ProducerTestSuite struct {
	suite.Suite
	ctx      context.Context
	producer layout.Producer
}

func TestProducerSuite(t *testing.T) {
	suite.Run(t, new(ProducerTestSuite))
}

func (s *ProducerTestSuite) SetupTest() {
	s.ctx = context.Background()
	p, err := layout.NewProducer(layout.DefaultConfig())
	s.Require().NoError(err)
	s.producer = p
}

func (s *ProducerTestSuite) produce(style string, seed uint64) *layout.ProduceOutput {
	out, err := s.producer.Produce(s.ctx, &layout.ProduceInput{
		Width:  40,
		Height: 30,
		Style:  style,
		Roller: rng.NewStream(seed),
	})
	s.Require().NoError(err)
	return out
}

func (s *ProducerTestSuite) TestConfigValidation() {
	_, err := layout.NewProducer(nil)
	s.Require().Error(err)

	cfg := layout.DefaultConfig()
	cfg.LeafSize = 3
	cfg.WallThreshold = 9
	_, err = layout.NewProducer(cfg)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "invalid config")
	s.Contains(err.Error(), "LeafSize")
	s.Contains(err.Error(), "WallThreshold")
}

func (s *ProducerTestSuite) TestInputValidation() {
	testCases := []struct {
		name  string
		input *layout.ProduceInput
		field string
	}{
		{
			name:  "nil input",
			input: nil,
			field: "input is required",
		},
		{
			name:  "missing roller",
			input: &layout.ProduceInput{Width: 40, Height: 30},
			field: "Roller",
		},
		{
			name:  "too narrow",
			input: &layout.ProduceInput{Width: 4, Height: 30, Roller: rng.NewStream(1)},
			field: "Width",
		},
		{
			name:  "unknown style",
			input: &layout.ProduceInput{Width: 40, Height: 30, Style: "swamp", Roller: rng.NewStream(1)},
			field: "Style",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.producer.Produce(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *ProducerTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.producer.Produce(ctx, &layout.ProduceInput{Width: 40, Height: 30, Roller: rng.NewStream(1)})
	s.Require().Error(err)
	s.True(errors.IsCanceled(err))
}

func (s *ProducerTestSuite) TestBoundaryAlwaysSealed() {
	for _, style := range entities.Styles() {
		for seed := uint64(1); seed <= 5; seed++ {
			out := s.produce(style, seed)
			grid := out.Grid
			s.Equal(30, grid.Height())
			s.Equal(40, grid.Width())
			for x := range grid.Width() {
				s.True(grid.IsWall(x, 0), "%s seed %d top (%d)", style, seed, x)
				s.True(grid.IsWall(x, grid.Height()-1), "%s seed %d bottom (%d)", style, seed, x)
			}
			for y := range grid.Height() {
				s.True(grid.IsWall(0, y), "%s seed %d left (%d)", style, seed, y)
				s.True(grid.IsWall(grid.Width()-1, y), "%s seed %d right (%d)", style, seed, y)
			}
		}
	}
}

func (s *ProducerTestSuite) TestSameSeedSameLayout() {
	for _, style := range entities.Styles() {
		s.Run(style, func() {
			a := s.produce(style, 1000)
			b := s.produce(style, 1000)
			s.Equal(0, a.Grid.Diff(b.Grid))
			s.Equal(a.Rooms, b.Rooms)
			s.Equal(a.SpawnPoints, b.SpawnPoints)
		})
	}
}

func (s *ProducerTestSuite) TestSpawnIsInStartRoomOnFloor() {
	for _, style := range entities.Styles() {
		s.Run(style, func() {
			out := s.produce(style, 7)
			s.Require().NotEmpty(out.Rooms)
			s.Require().Len(out.SpawnPoints, 1)

			start := out.Rooms[0]
			spawn := out.SpawnPoints[0]
			s.True(start.IsStart)
			s.True(start.Contains(spawn.X, spawn.Y))
			s.True(out.Grid.IsFloor(spawn.X, spawn.Y))
			s.Equal([]entities.EntitySpawn{{Label: entities.LabelPlayer, X: spawn.X, Y: spawn.Y}}, start.Spawns)
		})
	}
}

func (s *ProducerTestSuite) TestRoomsStayInsideAndOneObjective() {
	out := s.produce(entities.StyleDungeon, 42)
	s.Require().Greater(len(out.Rooms), 1)

	objectives := 0
	for _, room := range out.Rooms {
		s.GreaterOrEqual(room.X, 1)
		s.GreaterOrEqual(room.Y, 1)
		s.LessOrEqual(room.X+room.Width, 39)
		s.LessOrEqual(room.Y+room.Height, 29)
		s.GreaterOrEqual(room.Width, layout.DefaultConfig().MinRoomSize)
		s.GreaterOrEqual(room.Height, layout.DefaultConfig().MinRoomSize)
		if room.IsObjective {
			objectives++
			s.False(room.IsStart)
		}
	}
	s.Equal(1, objectives)
}

func (s *ProducerTestSuite) TestCorridorStylesAreConnected() {
	for _, style := range []string{entities.StyleDungeon, entities.StyleOutdoor} {
		for seed := uint64(1); seed <= 5; seed++ {
			out := s.produce(style, seed)
			s.Len(pathing.Components(out.Grid), 1, "%s seed %d", style, seed)
		}
	}
}

func (s *ProducerTestSuite) TestSmallestGridFallsBackToOneRoom() {
	out, err := s.producer.Produce(s.ctx, &layout.ProduceInput{Width: 10, Height: 10, Roller: rng.NewStream(3)})
	s.Require().NoError(err)
	s.Require().Len(out.Rooms, 1)
	s.True(out.Rooms[0].IsStart)
	s.False(out.Rooms[0].IsObjective)
	s.True(out.Grid.IsFloor(out.SpawnPoints[0].X, out.SpawnPoints[0].Y))
}
