// Package v1alpha1 serves the level generation gRPC API
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/orchestrators/level"
)

// HandlerConfig holds dependencies for the level handler
type HandlerConfig struct {
	LevelService level.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.LevelService == nil {
		return errors.InvalidArgument("level service is required")
	}
	return nil
}

// Handler implements LevelServiceServer on top of the level orchestrator
type Handler struct {
	UnimplementedLevelServiceServer
	levelService level.Service
}

var _ LevelServiceServer = (*Handler)(nil)

// NewHandler creates a new level handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		levelService: cfg.LevelService,
	}, nil
}

// GenerateLevel generates, stores and returns one level
func (h *Handler) GenerateLevel(ctx context.Context, req *GenerateLevelRequest) (*GenerateLevelResponse, error) {
	if req.WorldSeed < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("world_seed must not be negative"))
	}
	if req.LevelIndex < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("level_index must not be negative"))
	}

	out, err := h.levelService.GenerateLevel(ctx, &level.GenerateLevelInput{
		WorldSeed:    req.WorldSeed,
		LevelIndex:   req.LevelIndex,
		Style:        req.Style,
		Difficulty:   req.Difficulty,
		SeedOverride: req.SeedOverride,
		Width:        req.Width,
		Height:       req.Height,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GenerateLevelResponse{
		Level:         out.Level,
		RepairHistory: out.RepairHistory,
	}, nil
}

// GetLevel returns a stored level
func (h *Handler) GetLevel(ctx context.Context, req *GetLevelRequest) (*GetLevelResponse, error) {
	if req.LevelID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("level_id is required"))
	}

	out, err := h.levelService.GetLevel(ctx, &level.GetLevelInput{LevelID: req.LevelID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetLevelResponse{Level: out.Level}, nil
}

// ListLevels returns the stored levels of one world
func (h *Handler) ListLevels(ctx context.Context, req *ListLevelsRequest) (*ListLevelsResponse, error) {
	out, err := h.levelService.ListLevels(ctx, &level.ListLevelsInput{WorldSeed: req.WorldSeed})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	levels := out.Levels
	if levels == nil {
		levels = []*entities.Level{}
	}
	return &ListLevelsResponse{Levels: levels}, nil
}

// ValidateLevel runs the full validation pipeline over a stored level or
// caller supplied data, repairing it when asked
func (h *Handler) ValidateLevel(ctx context.Context, req *ValidateLevelRequest) (*ValidateLevelResponse, error) {
	switch {
	case req.LevelID == "" && req.Data == nil:
		return nil, errors.ToGRPCError(errors.InvalidArgument("one of level_id or data is required"))
	case req.LevelID != "" && req.Data != nil:
		return nil, errors.ToGRPCError(errors.InvalidArgument("level_id and data are mutually exclusive"))
	}

	data := req.Data
	if req.LevelID != "" {
		stored, err := h.levelService.GetLevel(ctx, &level.GetLevelInput{LevelID: req.LevelID})
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		data = level.LevelData(stored.Level)
	}

	out, err := h.levelService.ValidateLevel(ctx, &level.ValidateLevelInput{
		Data:   data,
		Repair: req.Repair,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ValidateLevelResponse{
		Result:         out.Result,
		RepairedData:   out.RepairedData,
		RepairedResult: out.RepairedResult,
	}, nil
}
