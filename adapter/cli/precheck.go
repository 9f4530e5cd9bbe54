package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/internal/roster/application/services"
	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

var (
	precheckInput string
	precheckJSON  bool
)

var precheckCmd = &cobra.Command{
	Use:   "precheck",
	Short: "Check whether declared availability can cover the demand",
	Long: `Analyze a request without solving: for every slot with a positive
requirement, count how many available staff could cover it and report the
shortfall, per-day shortage ranges and weekly capacity warnings.

Examples:
  rotaplan precheck -i request.json
  rotaplan precheck -i request.json --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readRequest(precheckInput)
		if err != nil {
			return err
		}
		problem, err := domain.NewProblem(input)
		if err != nil {
			return err
		}

		result := services.Precheck(problem)
		if precheckJSON {
			return writeJSON("", result)
		}
		renderPrecheck(cmd.OutOrStdout(), result)
		if !result.Feasible {
			return fmt.Errorf("declared availability cannot cover the demand")
		}
		return nil
	},
}

func init() {
	precheckCmd.Flags().StringVarP(&precheckInput, "input", "i", "", "request JSON file (required)")
	precheckCmd.Flags().BoolVar(&precheckJSON, "json", false, "print the raw result JSON")
	_ = precheckCmd.MarkFlagRequired("input")
}
