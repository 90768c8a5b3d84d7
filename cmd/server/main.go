// Package main is the entry point for the level generation service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-levelgen/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-levelgen",
	Short: "Procedural level generation service",
	Long: `rpg-levelgen generates, validates and repairs tile-based levels for 2D games.
It serves a gRPC LevelService, generates levels locally, and ships a client for the service.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
