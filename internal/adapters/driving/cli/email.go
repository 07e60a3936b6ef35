package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

var (
	emailFlags = profileFlags{allowSaved: true}
	emailTo    string
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Email a numerology report",
	Long: `Computes a report and sends it to an address.

Examples:
  numen email --to ada@example.com --name "Ada Lovelace" --date 1815-12-10
  numen email --to ada@example.com --profile 3f2a...`,
	Args: cobra.NoArgs,
	RunE: runEmail,
}

func init() {
	emailFlags.register(emailCmd)
	emailCmd.Flags().StringVar(&emailTo, "to", "", "recipient address")
	_ = emailCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(emailCmd)
}

func runEmail(cmd *cobra.Command, _ []string) error {
	if emailService == nil {
		return errors.New("email service not configured")
	}

	report, err := buildReport(cmd, &emailFlags)
	if err != nil {
		return err
	}

	if err := emailService.SendReport(cmd.Context(), emailTo, report); err != nil {
		if errors.Is(err, domain.ErrEmailFailed) {
			return domain.ErrEmailFailed
		}
		return fmt.Errorf("email failed: %w", err)
	}

	cmd.Printf("Report sent to %s\n", emailTo)
	return nil
}
