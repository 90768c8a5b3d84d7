package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	mr *miniredis.Miniredis
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
}

func (s *ClientTestSuite) TearDownTest() {
	s.mr.Close()
}

func (s *ClientTestSuite) TestNewClientRequiresEndpoint() {
	_, err := redis.NewClient("", nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ClientTestSuite) TestNewClientRejectsBadOptions() {
	_, err := redis.NewClient(s.mr.Addr(), &redis.Options{PoolSize: -1, DB: -2})
	s.Require().Error(err)
	s.Contains(err.Error(), "PoolSize")
	s.Contains(err.Error(), "DB")
}

func (s *ClientTestSuite) TestPing() {
	client, err := redis.NewClient(s.mr.Addr(), &redis.Options{PoolSize: 2})
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	s.NoError(redis.Ping(context.Background(), client))

	down, err := miniredis.Run()
	s.Require().NoError(err)
	addr := down.Addr()
	down.Close()

	gone, err := redis.NewClient(addr, &redis.Options{MaxRetries: -1})
	s.Require().NoError(err)
	defer func() { _ = gone.Close() }()

	err = redis.Ping(context.Background(), gone)
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}
