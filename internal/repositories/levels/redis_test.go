package levels_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels"
	"github.com/KirkDiggler/rpg-levelgen/internal/testutils"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	server  *miniredis.Miniredis
	cleanup func()
	repo    levels.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, server, cleanup := testutils.CreateTestRedisServer(s.T())
	s.server = server
	s.cleanup = cleanup

	repo, err := levels.NewRedis(&levels.RedisConfig{
		Client: client,
		Clock:  clock.Fixed(testNow),
		TTL:    time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestConfigValidation() {
	_, err := levels.NewRedis(nil)
	s.Require().Error(err)

	_, err = levels.NewRedis(&levels.RedisConfig{TTL: -time.Second})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Client")
	s.Contains(err.Error(), "TTL")
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	level := testutils.CreateTestLevel("level_1", 42, 0)

	out, err := s.repo.Create(s.ctx, levels.CreateInput{Level: level})
	s.Require().NoError(err)
	s.Equal(testNow, out.Level.CreatedAt)

	s.True(s.server.Exists("level:level_1"))
	s.Equal(time.Hour, s.server.TTL("level:level_1"))
	members, err := s.server.SMembers("level:world:42")
	s.Require().NoError(err)
	s.Equal([]string{"level_1"}, members)

	got, err := s.repo.Get(s.ctx, levels.GetInput{ID: "level_1"})
	s.Require().NoError(err)
	s.Equal(level.Grid, got.Level.Grid)
	s.Equal(level.TerrainGrid, got.Level.TerrainGrid)
	s.Equal(level.Enemies, got.Level.Enemies)
	s.Equal(level.Areas.Areas(), got.Level.Areas.Areas())
	s.Equal(level.Start, got.Level.Start)
	s.True(testNow.Equal(got.Level.CreatedAt))
}

func (s *RedisRepositoryTestSuite) TestCreateErrors() {
	testCases := []struct {
		name  string
		input levels.CreateInput
		check func(error) bool
	}{
		{
			name:  "nil level",
			input: levels.CreateInput{},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "empty id",
			input: levels.CreateInput{Level: &entities.Level{}},
			check: errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err))
		})
	}

	s.Run("duplicate id", func() {
		_, err := s.repo.Create(s.ctx, levels.CreateInput{Level: testutils.CreateTestLevel("dup", 1, 0)})
		s.Require().NoError(err)
		_, err = s.repo.Create(s.ctx, levels.CreateInput{Level: testutils.CreateTestLevel("dup", 1, 0)})
		s.Require().Error(err)
		s.True(errors.IsAlreadyExists(err))
	})
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, levels.GetInput{ID: "nope"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, levels.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestExpiredLevelIsNotFound() {
	_, err := s.repo.Create(s.ctx, levels.CreateInput{Level: testutils.CreateTestLevel("short", 9, 0)})
	s.Require().NoError(err)

	s.server.FastForward(2 * time.Hour)

	_, err = s.repo.Get(s.ctx, levels.GetInput{ID: "short"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, levels.CreateInput{Level: testutils.CreateTestLevel("gone", 5, 0)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, levels.DeleteInput{ID: "gone"})
	s.Require().NoError(err)
	s.False(s.server.Exists("level:gone"))

	out, err := s.repo.ListByWorld(s.ctx, levels.ListByWorldInput{WorldSeed: 5})
	s.Require().NoError(err)
	s.Empty(out.Levels)

	_, err = s.repo.Delete(s.ctx, levels.DeleteInput{ID: "gone"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByWorldOrdersAndCleansStaleEntries() {
	for _, lvl := range []*entities.Level{
		testutils.CreateTestLevel("c", 7, 2),
		testutils.CreateTestLevel("a", 7, 0),
		testutils.CreateTestLevel("b", 7, 1),
		testutils.CreateTestLevel("other", 8, 0),
	} {
		_, err := s.repo.Create(s.ctx, levels.CreateInput{Level: lvl})
		s.Require().NoError(err)
	}
	s.server.Del("level:b")

	out, err := s.repo.ListByWorld(s.ctx, levels.ListByWorldInput{WorldSeed: 7})
	s.Require().NoError(err)
	s.Require().Len(out.Levels, 2)
	s.Equal("a", out.Levels[0].ID)
	s.Equal("c", out.Levels[1].ID)

	members, err := s.server.SMembers("level:world:7")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"a", "c"}, members)
}
