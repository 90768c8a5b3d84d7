package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-levelgen/internal/config"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-levelgen/internal/redis"
	"github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels"
)

var (
	grpcPort     int
	redisAddr    string
	logLevel     string
	logFormat    string
	shutdownWait time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the level generation gRPC server. Levels are stored in redis when enabled, in memory otherwise.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides config)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis endpoint; enables redis storage (overrides config)")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	serverCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: text or json (overrides config)")
	serverCmd.Flags().DurationVar(&shutdownWait, "shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
}

// applyServerFlags lets flags win over file values
func applyServerFlags(cfg *config.Config) error {
	if grpcPort != 0 {
		cfg.Server.Port = grpcPort
	}
	if redisAddr != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Endpoint = redisAddr
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.Server.LogFormat = logFormat
	}
	return cfg.Validate()
}

// newRepository picks the level store
func newRepository(ctx context.Context, cfg config.RedisConfig) (levels.Repository, func(), error) {
	if !cfg.Enabled {
		slog.Info("Using in-memory level storage")
		return levels.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redisclient.NewClient(cfg.Endpoint, &cfg.Pool)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisclient.Ping(pingCtx, client); err != nil {
		cleanup()
		return nil, nil, err
	}

	repo, err := levels.NewRedis(&levels.RedisConfig{
		Client: client,
		Clock:  clock.New(),
		TTL:    cfg.LevelTTL,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	slog.Info("Using redis level storage", "endpoint", cfg.Endpoint, "ttl", cfg.LevelTTL)
	return repo, cleanup, nil
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyServerFlags(cfg); err != nil {
		return err
	}
	if err := installLogger(cfg.Server); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newRepository(ctx, cfg.Redis)
	if err != nil {
		return errors.Wrap(err, "failed to create level storage")
	}
	defer closeRepo()

	eng, err := newEngine(cfg, repo, events.NewBus())
	if err != nil {
		return errors.Wrap(err, "failed to create level service")
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{LevelService: eng.service})
	if err != nil {
		return errors.Wrap(err, "failed to create level handler")
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %d", cfg.Server.Port)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(slog.Default())),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverPanic)),
		),
	)

	v1alpha1.RegisterLevelServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Server.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(shutdownWait):
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// interceptorLogger adapts slog to the middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(p any) error {
	slog.Error("Recovered from panic", "panic", p)
	return errors.ToGRPCError(errors.Internalf("internal error: %v", p))
}
