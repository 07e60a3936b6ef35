package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

var (
	reportFlags  = profileFlags{allowSaved: true}
	reportJSON   bool
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a full numerology report",
	Long: `Computes every number for a person and prints it with interpretations.

Examples:
  numen report --name "Ada Lovelace" --date 1815-12-10
  numen report --profile 3f2a... --on 2026-01-01 --json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportFlags.register(reportCmd)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output as JSON")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text, markdown or json")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	report, err := buildReport(cmd, &reportFlags)
	if err != nil {
		return err
	}

	format := domain.ShareFormat(reportFormat)
	if reportJSON {
		format = domain.ShareFormatJSON
	}
	if !format.IsValid() {
		return fmt.Errorf("unknown format %q", reportFormat)
	}

	data, err := renderReport(report, format)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		cmd.Println()
	}
	return nil
}

// buildReport resolves the profile flags and computes the report.
func buildReport(cmd *cobra.Command, flags *profileFlags) (*domain.Report, error) {
	if numerologyService == nil {
		return nil, errors.New("numerology service not configured")
	}
	profile, on, err := flags.resolve(cmd.Context())
	if err != nil {
		return nil, err
	}
	report, err := numerologyService.Report(cmd.Context(), profile, on)
	if err != nil {
		return nil, fmt.Errorf("report failed: %w", err)
	}
	return report, nil
}

func renderReport(report *domain.Report, format domain.ShareFormat) ([]byte, error) {
	if shareService == nil {
		return nil, errors.New("share service not configured")
	}
	data, err := shareService.Render(report, format)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	return data, nil
}
