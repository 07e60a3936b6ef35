package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

var (
	shareFlags  = profileFlags{allowSaved: true}
	shareFormat string
	shareOut    string
	shareOpen   bool
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Copy, export or upload a report",
}

var shareCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the report to the clipboard",
	Args:  cobra.NoArgs,
	RunE:  runShareCopy,
}

var shareExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the report to a file",
	Long: `Writes the report to --out. When --out is a directory (the default is the
current directory), the file name is derived from the name and date.`,
	Args: cobra.NoArgs,
	RunE: runShareExport,
}

var shareUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the report and print a temporary link",
	Long: `Uploads the report to the configured S3 bucket and prints a presigned link.
Configure the bucket with 'numen settings share'.`,
	Args: cobra.NoArgs,
	RunE: runShareUpload,
}

func init() {
	// The three subcommands share one flag set.
	for _, c := range []*cobra.Command{shareCopyCmd, shareExportCmd, shareUploadCmd} {
		shareFlags.register(c)
		c.Flags().StringVarP(&shareFormat, "format", "f", "markdown", "format: text, markdown or json")
		shareCmd.AddCommand(c)
	}
	shareExportCmd.Flags().StringVarP(&shareOut, "out", "o", ".", "output file or directory")
	shareExportCmd.Flags().BoolVar(&shareOpen, "open", false, "open the file after writing")
	shareUploadCmd.Flags().BoolVar(&shareOpen, "open", false, "open the link in a browser")
	rootCmd.AddCommand(shareCmd)
}

func shareSetup(cmd *cobra.Command) (*domain.Report, domain.ShareFormat, error) {
	if shareService == nil {
		return nil, "", errors.New("share service not configured")
	}
	format := domain.ShareFormat(shareFormat)
	if !format.IsValid() {
		return nil, "", fmt.Errorf("unknown format %q", shareFormat)
	}
	report, err := buildReport(cmd, &shareFlags)
	if err != nil {
		return nil, "", err
	}
	return report, format, nil
}

func runShareCopy(cmd *cobra.Command, _ []string) error {
	report, _, err := shareSetup(cmd)
	if err != nil {
		return err
	}
	if err := shareService.CopyToClipboard(cmd.Context(), report); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	cmd.Println("Report copied to clipboard.")
	return nil
}

func runShareExport(cmd *cobra.Command, _ []string) error {
	report, format, err := shareSetup(cmd)
	if err != nil {
		return err
	}
	path, err := shareService.Export(cmd.Context(), report, shareOut, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Report written to %s\n", path)

	if shareOpen {
		if err := shareService.Open(cmd.Context(), path); err != nil {
			return fmt.Errorf("open failed: %w", err)
		}
	}
	return nil
}

func runShareUpload(cmd *cobra.Command, _ []string) error {
	report, format, err := shareSetup(cmd)
	if err != nil {
		return err
	}
	link, err := shareService.Upload(cmd.Context(), report, format)
	if err != nil {
		if errors.Is(err, domain.ErrShareUnavailable) {
			return fmt.Errorf("%w, run 'numen settings share' first", domain.ErrShareUnavailable)
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Println(link.URL)
	cmd.Printf("Link expires %s\n", link.ExpiresAt.Local().Format("2006-01-02 15:04"))

	if shareOpen {
		if err := shareService.Open(cmd.Context(), link.URL); err != nil {
			return fmt.Errorf("open failed: %w", err)
		}
	}
	return nil
}
