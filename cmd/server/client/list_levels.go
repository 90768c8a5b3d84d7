package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
)

var listWorldSeed int64

var listLevelsCmd = &cobra.Command{
	Use:   "list-levels",
	Short: "List the stored levels of a world",
	RunE:  runListLevels,
}

func init() {
	listLevelsCmd.Flags().Int64Var(&listWorldSeed, "world-seed", 0, "World seed")
}

func runListLevels(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createLevelClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.ListLevels(ctx, &v1alpha1.ListLevelsRequest{WorldSeed: listWorldSeed})
	if err != nil {
		return errors.Wrap(errors.FromGRPCError(err), "failed to list levels")
	}

	w := cmd.OutOrStdout()
	if output == "json" {
		return writeJSON(w, resp.Levels)
	}
	fmt.Fprintf(w, "World %d: %d levels\n", listWorldSeed, len(resp.Levels))
	for _, lvl := range resp.Levels {
		valid := "-"
		if lvl.Report != nil {
			valid = fmt.Sprintf("%v", lvl.Report.Valid)
		}
		fmt.Fprintf(w, "  #%d %s %s %dx%d difficulty=%d enemies=%d valid=%s\n",
			lvl.LevelIndex, lvl.ID, lvl.Style, lvl.Grid.Width(), lvl.Grid.Height(),
			lvl.Difficulty, len(lvl.Enemies), valid)
	}
	return nil
}
