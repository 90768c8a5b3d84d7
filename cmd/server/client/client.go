// Package client provides commands that call a running level service
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/handlers/levelgen/v1alpha1"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/levelmap"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	output     string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running level service",
	Long:  `Client commands make real gRPC requests against a level service.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVarP(&output, "output", "o", "ascii", "Output: ascii, yaml or json")

	ClientCmd.AddCommand(generateLevelCmd)
	ClientCmd.AddCommand(getLevelCmd)
	ClientCmd.AddCommand(listLevelsCmd)
	ClientCmd.AddCommand(validateLevelCmd)
}

// createLevelClient dials the server; callers must run the cleanup
func createLevelClient() (v1alpha1.LevelServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to connect to %s", serverAddr)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return v1alpha1.NewLevelServiceClient(conn), cleanup, nil
}

// printLevel writes a level in the selected output
func printLevel(w io.Writer, lvl *entities.Level, history []string) error {
	switch output {
	case "json":
		return writeJSON(w, lvl)
	case "yaml":
		return levelmap.WriteYAML(w, lvl, history)
	case "ascii":
		if err := levelmap.Render(w, lvl); err != nil {
			return err
		}
		for _, h := range history {
			fmt.Fprintf(w, "  repaired: %s\n", h)
		}
		return nil
	default:
		return errors.InvalidArgumentf("unknown output %q (ascii, yaml or json)", output)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
