package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

// Version is stamped at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rotaplan",
	Short: "Shift schedule optimizer for a single location",
	Long: `Rotaplan builds a feasible, cost-minimal staff schedule for one
retail or service location over a horizon of dates. It consumes a request
JSON file (staff list, policy configuration, dates, leave requests) and
produces a shift list via a tiered optimizer with a greedy fallback.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(precheckCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// readRequest loads and decodes a request JSON file.
func readRequest(path string) (domain.SolveInput, error) {
	var input domain.SolveInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("read request: %w", err)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("decode request: %w", err)
	}
	return input, nil
}

// writeJSON writes a value as indented JSON, to stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
