package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
	"github.com/KirkDiggler/rpg-levelgen/internal/orchestrators/level"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels"
	"github.com/KirkDiggler/rpg-levelgen/internal/services/layout"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// GRPCTestSuite runs the real orchestrator behind an in-process gRPC server
type GRPCTestSuite struct {
	suite.Suite
	ctx      context.Context
	server   *grpc.Server
	conn     *grpc.ClientConn
	client   v1alpha1.LevelServiceClient
	terrains *terrain.Registry
}

func TestGRPCSuite(t *testing.T) {
	suite.Run(t, new(GRPCTestSuite))
}

func (s *GRPCTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.terrains = terrain.NewDefaultRegistry()
	areaReg := areas.NewDefaultRegistry(s.terrains)

	v, err := validator.New(&validator.Config{TerrainRegistry: s.terrains, AreaRegistry: areaReg})
	s.Require().NoError(err)
	producer, err := layout.NewProducer(layout.DefaultConfig())
	s.Require().NoError(err)

	now := clock.Fixed(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	svc, err := level.NewOrchestrator(&level.Config{
		Producer:        producer,
		TerrainRegistry: s.terrains,
		AreaRegistry:    areaReg,
		Validator:       v,
		LevelRepo:       levels.NewInMemory(now),
		IDGenerator:     idgen.NewSequential("level"),
		Clock:           now,
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{LevelService: svc})
	s.Require().NoError(err)

	lis := bufconn.Listen(4 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterLevelServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(4<<20)),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = v1alpha1.NewLevelServiceClient(conn)
}

func (s *GRPCTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *GRPCTestSuite) TestGenerateThenFetch() {
	gen, err := s.client.GenerateLevel(s.ctx, &v1alpha1.GenerateLevelRequest{
		WorldSeed:  42,
		LevelIndex: 1,
		Style:      entities.StyleDungeon,
	})
	s.Require().NoError(err)
	s.Require().NotNil(gen.Level)
	s.Equal("level_1", gen.Level.ID)
	s.Equal(int64(42), gen.Level.WorldSeed)
	s.True(gen.Level.Procedural)
	s.NotNil(gen.Level.Report)

	got, err := s.client.GetLevel(s.ctx, &v1alpha1.GetLevelRequest{LevelID: gen.Level.ID})
	s.Require().NoError(err)
	s.Equal(gen.Level.Grid, got.Level.Grid)
	s.Equal(gen.Level.TerrainGrid, got.Level.TerrainGrid)
	s.Equal(gen.Level.Areas.Len(), got.Level.Areas.Len())
	s.Len(got.Level.Enemies, len(gen.Level.Enemies))

	list, err := s.client.ListLevels(s.ctx, &v1alpha1.ListLevelsRequest{WorldSeed: 42})
	s.Require().NoError(err)
	s.Require().Len(list.Levels, 1)
	s.Equal(gen.Level.ID, list.Levels[0].ID)
}

func (s *GRPCTestSuite) TestValidateStoredLevel() {
	gen, err := s.client.GenerateLevel(s.ctx, &v1alpha1.GenerateLevelRequest{WorldSeed: 5})
	s.Require().NoError(err)

	resp, err := s.client.ValidateLevel(s.ctx, &v1alpha1.ValidateLevelRequest{LevelID: gen.Level.ID})
	s.Require().NoError(err)
	s.Require().NotNil(resp.Result)
	s.Equal(validator.ScopeFull, resp.Result.Scope)
	s.Equal(gen.Level.Report.Valid, resp.Result.IsValid)
}

func (s *GRPCTestSuite) TestValidateShowcaseOverTheWire() {
	showcase := level.TerrainTestLevel(s.terrains, validator.DefaultTileSize)

	resp, err := s.client.ValidateLevel(s.ctx, &v1alpha1.ValidateLevelRequest{Data: level.LevelData(showcase)})
	s.Require().NoError(err)
	s.True(resp.Result.IsValid, "issues: %v", resp.Result.Issues)
	s.Contains(resp.Result.Metrics.Stages, validator.StageAreas)
}

func (s *GRPCTestSuite) TestErrorsKeepTheirCode() {
	_, err := s.client.GetLevel(s.ctx, &v1alpha1.GetLevelRequest{LevelID: "level_404"})
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
	s.True(errors.IsNotFound(errors.FromGRPCError(err)))

	_, err = s.client.GenerateLevel(s.ctx, &v1alpha1.GenerateLevelRequest{Style: "space"})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}
