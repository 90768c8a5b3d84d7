package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
)

var (
	worldSeed  int64
	levelIndex int
	style      string
	difficulty int
	seed       uint64
	width      int
	height     int
)

var generateLevelCmd = &cobra.Command{
	Use:   "generate-level",
	Short: "Generate and store a level on the server",
	RunE:  runGenerateLevel,
}

func init() {
	generateLevelCmd.Flags().Int64Var(&worldSeed, "world-seed", 0, "World seed")
	generateLevelCmd.Flags().IntVar(&levelIndex, "index", 0, "Level index within the world")
	generateLevelCmd.Flags().StringVar(&style, "style", "", "Style: dungeon, cave, outdoor or hybrid")
	generateLevelCmd.Flags().IntVar(&difficulty, "difficulty", 0, "Difficulty 1-3")
	generateLevelCmd.Flags().Uint64Var(&seed, "seed", 0, "Explicit level seed")
	generateLevelCmd.Flags().IntVar(&width, "width", 0, "Width in tiles")
	generateLevelCmd.Flags().IntVar(&height, "height", 0, "Height in tiles")
}

func runGenerateLevel(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createLevelClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	req := &v1alpha1.GenerateLevelRequest{
		WorldSeed:  worldSeed,
		LevelIndex: levelIndex,
		Style:      style,
		Difficulty: difficulty,
		Width:      width,
		Height:     height,
	}
	if cmd.Flags().Changed("seed") {
		s := seed
		req.SeedOverride = &s
	}

	resp, err := client.GenerateLevel(ctx, req)
	if err != nil {
		return errors.Wrap(errors.FromGRPCError(err), "failed to generate level")
	}

	return printLevel(cmd.OutOrStdout(), resp.Level, resp.RepairHistory)
}
