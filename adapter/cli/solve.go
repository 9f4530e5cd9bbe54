package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	solveInput  string
	solveOutput string
	solveMode   string
	solveQuiet  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Generate a shift schedule from a request file",
	Long: `Generate a shift schedule for the request's dates.

The optimizer walks three tiers (full model, coverage only, forced legal
minimum) and falls back to a greedy filler when none of them produces a
usable schedule. The response is always a success; an empty shift list
with mode "none" means no step could assign anything.

Examples:
  rotaplan solve -i request.json
  rotaplan solve -i request.json -o schedule.json
  rotaplan solve -i request.json --mode force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Engine == nil {
			return fmt.Errorf("application not initialized")
		}

		input, err := readRequest(solveInput)
		if err != nil {
			return err
		}
		if solveMode != "" {
			input.Mode = solveMode
		}

		result, err := app.Engine.Solve(cmd.Context(), input)
		if err != nil {
			return err
		}

		if solveOutput != "" || solveQuiet {
			return writeJSON(solveOutput, result)
		}
		renderSchedule(cmd.OutOrStdout(), input, result)
		return nil
	},
}

func init() {
	solveCmd.Flags().StringVarP(&solveInput, "input", "i", "", "request JSON file (required)")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "write the result JSON to a file instead of rendering")
	solveCmd.Flags().StringVar(&solveMode, "mode", "", "override the request mode (auto, math, force)")
	solveCmd.Flags().BoolVarP(&solveQuiet, "json", "q", false, "print the raw result JSON")
	_ = solveCmd.MarkFlagRequired("input")
}
