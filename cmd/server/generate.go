package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/orchestrators/level"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/levelmap"
	"github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels"
)

// Output formats of the generate command
const (
	outputASCII = "ascii"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var (
	genWorldSeed  int64
	genIndex      int
	genCount      int
	genStyle      string
	genDifficulty int
	genSeed       uint64
	genWidth      int
	genHeight     int
	genOutput     string
	genShowcase   bool
	genLegend     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate levels locally and print them",
	Long: `Generate runs the full generation pipeline in process, without a server,
and prints each level as an ASCII map, a YAML summary or the full JSON product.`,
	Example: `  rpg-levelgen generate --world-seed 1000 --index 0 --count 3 --style cave
  rpg-levelgen generate --showcase --output yaml`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int64Var(&genWorldSeed, "world-seed", 0, "World seed")
	generateCmd.Flags().IntVar(&genIndex, "index", 0, "Index of the first level")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "Number of consecutive levels to generate")
	generateCmd.Flags().StringVar(&genStyle, "style", "", "Style: dungeon, cave, outdoor or hybrid")
	generateCmd.Flags().IntVar(&genDifficulty, "difficulty", 0, "Difficulty 1-3")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "Explicit level seed, replaces the derived one (single level only)")
	generateCmd.Flags().IntVar(&genWidth, "width", 0, "Width in tiles")
	generateCmd.Flags().IntVar(&genHeight, "height", 0, "Height in tiles")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", outputASCII, "Output: ascii, yaml or json")
	generateCmd.Flags().BoolVar(&genShowcase, "showcase", false, "Print the terrain showcase level instead")
	generateCmd.Flags().BoolVar(&genLegend, "legend", false, "Print the map legend after ASCII output")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	switch genOutput {
	case outputASCII, outputJSON, outputYAML:
	default:
		return errors.InvalidArgumentf("unknown output %q (ascii, yaml or json)", genOutput)
	}
	if genCount < 1 {
		return errors.InvalidArgument("count must be at least 1")
	}
	if cmd.Flags().Changed("seed") && genCount > 1 {
		return errors.InvalidArgument("--seed applies to a single level")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := installLogger(cfg.Server); err != nil {
		return err
	}

	eng, err := newEngine(cfg, levels.NewInMemory(clock.New()), nil)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if genShowcase {
		showcase := level.TerrainTestLevel(eng.terrains, cfg.Generator.TileSize)
		res, err := eng.service.ValidateLevel(cmd.Context(), &level.ValidateLevelInput{Data: level.LevelData(showcase)})
		if err != nil {
			return err
		}
		showcase.Report = &entities.LevelReport{Valid: res.Result.IsValid, Issues: res.Result.Issues, ValidationAttempts: 1}
		return printLevel(out, showcase, nil)
	}

	for i := 0; i < genCount; i++ {
		input := &level.GenerateLevelInput{
			WorldSeed:  genWorldSeed,
			LevelIndex: genIndex + i,
			Style:      genStyle,
			Difficulty: genDifficulty,
			Width:      genWidth,
			Height:     genHeight,
		}
		if cmd.Flags().Changed("seed") {
			seed := genSeed
			input.SeedOverride = &seed
		}

		res, err := eng.service.GenerateLevel(cmd.Context(), input)
		if err != nil {
			return err
		}
		if i > 0 && genOutput == outputASCII {
			fmt.Fprintln(out)
		}
		if err := printLevel(out, res.Level, res.RepairHistory); err != nil {
			return err
		}
	}
	return nil
}

func printLevel(w io.Writer, lvl *entities.Level, history []string) error {
	switch genOutput {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lvl)
	case outputYAML:
		return levelmap.WriteYAML(w, lvl, history)
	default:
		if err := levelmap.Render(w, lvl); err != nil {
			return err
		}
		if lvl.Report != nil && !lvl.Report.Valid {
			for _, issue := range lvl.Report.Issues {
				fmt.Fprintf(w, "  ! %s\n", issue)
			}
		}
		if genLegend {
			for _, l := range levelmap.Legend {
				fmt.Fprintf(w, "  %s\n", l)
			}
		}
		return nil
	}
}
