package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/internal/roster/infrastructure/export"
)

var (
	exportInput  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Solve a request and export the roster as a spreadsheet",
	Long: `Solve the request and write the resulting staff-by-date roster to
an Excel workbook.

Examples:
  rotaplan export -i request.json -o roster.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Engine == nil {
			return fmt.Errorf("application not initialized")
		}

		input, err := readRequest(exportInput)
		if err != nil {
			return err
		}
		result, err := app.Engine.Solve(cmd.Context(), input)
		if err != nil {
			return err
		}

		if err := export.WriteWorkbook(exportOutput, input, result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d shifts to %s\n", len(result.Shifts), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "request JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "roster.xlsx", "workbook path")
	_ = exportCmd.MarkFlagRequired("input")
}
