package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

var (
	validateLevelID string
	validateFile    string
	repair          bool
)

var validateLevelCmd = &cobra.Command{
	Use:   "validate-level",
	Short: "Validate a stored level or a JSON level file",
	Long: `Validate runs the full validation pipeline on the server. Pass --level-id for a
stored level or --file for a JSON document shaped like the validation input.`,
	RunE: runValidateLevel,
}

func init() {
	validateLevelCmd.Flags().StringVar(&validateLevelID, "level-id", "", "Stored level ID")
	validateLevelCmd.Flags().StringVar(&validateFile, "file", "", "JSON level data file")
	validateLevelCmd.Flags().BoolVar(&repair, "repair", false, "Repair the level when it is invalid")
	validateLevelCmd.MarkFlagsMutuallyExclusive("level-id", "file")
	validateLevelCmd.MarkFlagsOneRequired("level-id", "file")
}

func runValidateLevel(cmd *cobra.Command, _ []string) error {
	req := &v1alpha1.ValidateLevelRequest{LevelID: validateLevelID, Repair: repair}
	if validateFile != "" {
		raw, err := os.ReadFile(validateFile) // #nosec G304 -- operator supplied path
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", validateFile)
		}
		var data validator.LevelData
		if err := json.Unmarshal(raw, &data); err != nil {
			return errors.InvalidArgumentf("%s is not valid level data: %v", validateFile, err)
		}
		req.Data = &data
	}

	client, cleanup, err := createLevelClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.ValidateLevel(ctx, req)
	if err != nil {
		return errors.Wrap(errors.FromGRPCError(err), "failed to validate level")
	}

	w := cmd.OutOrStdout()
	if output == "json" {
		return writeJSON(w, resp)
	}

	printResult(cmd, "Validation", resp.Result)
	if resp.RepairedResult != nil {
		printResult(cmd, "After repair", resp.RepairedResult)
		for _, h := range resp.RepairedResult.RepairHistory {
			fmt.Fprintf(w, "  repaired: %s\n", h)
		}
	}
	return nil
}

func printResult(cmd *cobra.Command, title string, res *validator.Result) {
	w := cmd.OutOrStdout()
	if res == nil {
		return
	}
	fmt.Fprintf(w, "%s: valid=%v (%s)\n", title, res.IsValid, res.Message)
	fmt.Fprintf(w, "  connectivity=%.2f path_success=%.2f complexity=%.2f combat_areas=%d chokepoints=%d\n",
		res.Metrics.ConnectivityRatio, res.Metrics.PathSuccessRate, res.Metrics.ComplexityScore,
		res.Metrics.CombatAreas, res.Metrics.Chokepoints)
	for _, issue := range res.Issues {
		fmt.Fprintf(w, "  ! %s\n", issue)
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "  ? %s\n", s)
	}
}
