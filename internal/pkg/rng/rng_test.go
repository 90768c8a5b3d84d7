package rng_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
)

type RNGTestSuite struct {
	suite.Suite
}

func TestRNGSuite(t *testing.T) {
	suite.Run(t, new(RNGTestSuite))
}

func (s *RNGTestSuite) TestLevelSeedIsStableAndDistinct() {
	s.Equal(rng.LevelSeed(1000, 3), rng.LevelSeed(1000, 3))
	s.NotEqual(rng.LevelSeed(1000, 3), rng.LevelSeed(1000, 4))
	s.NotEqual(rng.LevelSeed(1000, 3), rng.LevelSeed(1001, 3))
}

func (s *RNGTestSuite) TestPurposeStreamsDiffer() {
	seed := rng.LevelSeed(42, 0)
	s.NotEqual(rng.PurposeSeed(seed, rng.PurposeLayout), rng.PurposeSeed(seed, rng.PurposeTerrain))
}

func (s *RNGTestSuite) TestStreamsReplay() {
	a := rng.NewStreams(rng.LevelSeed(7, 1))
	b := rng.NewStreams(rng.LevelSeed(7, 1))

	rollsA, err := a.Layout.RollN(20, 100)
	s.Require().NoError(err)
	rollsB, err := b.Layout.RollN(20, 100)
	s.Require().NoError(err)
	s.Equal(rollsA, rollsB)

	for _, v := range rollsA {
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 100)
	}
}

func (s *RNGTestSuite) TestRollRejectsBadSizes() {
	stream := rng.NewStream(1)

	_, err := stream.Roll(0)
	s.Error(err)

	_, err = stream.RollN(-1, 6)
	s.Error(err)
}

func (s *RNGTestSuite) TestHelpers() {
	stream := rng.NewStream(99)

	s.Zero(rng.Intn(stream, 1))
	for i := 0; i < 50; i++ {
		v := rng.Intn(stream, 5)
		s.GreaterOrEqual(v, 0)
		s.Less(v, 5)
	}

	s.False(rng.Percent(stream, 0))
	s.True(rng.Percent(stream, 100))
}
