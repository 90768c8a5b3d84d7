package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
)

var levelID string

var getLevelCmd = &cobra.Command{
	Use:   "get-level",
	Short: "Fetch a stored level by ID",
	RunE:  runGetLevel,
}

func init() {
	getLevelCmd.Flags().StringVar(&levelID, "level-id", "", "Level ID (required)")
	_ = getLevelCmd.MarkFlagRequired("level-id") // nolint:errcheck // safe to ignore in init
}

func runGetLevel(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createLevelClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.GetLevel(ctx, &v1alpha1.GetLevelRequest{LevelID: levelID})
	if err != nil {
		return errors.Wrap(errors.FromGRPCError(err), "failed to get level")
	}

	return printLevel(cmd.OutOrStdout(), resp.Level, nil)
}
