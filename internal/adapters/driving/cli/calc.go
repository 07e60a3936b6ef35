package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

var (
	calcFlags = profileFlags{}
	calcJSON  bool
)

var calcCmd = &cobra.Command{
	Use:   "calc <kind>",
	Short: "Calculate a single numerology number",
	Long: `Calculate one kind of number for a name and birth date.

Available kinds:
` + kindList(),
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	calcFlags.register(calcCmd)
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(calcCmd)
}

func kindList() string {
	var b strings.Builder
	for _, k := range domain.AllNumberKinds() {
		fmt.Fprintf(&b, "  %-16s %s\n", k, k.Description())
	}
	return b.String()
}

func runCalc(cmd *cobra.Command, args []string) error {
	if numerologyService == nil {
		return errors.New("numerology service not configured")
	}

	kind := domain.NumberKind(strings.ToLower(strings.TrimSpace(args[0])))
	if !kind.IsValid() {
		return fmt.Errorf("unknown kind %q, run 'numen calc --help' for the list", args[0])
	}

	profile, on, err := calcFlags.resolve(cmd.Context())
	if err != nil {
		return err
	}

	numbers, err := numerologyService.Calculate(kind, profile, on)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	if calcJSON {
		data, err := json.MarshalIndent(numbers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal numbers: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(numbers) == 0 {
		cmd.Printf("%s: none\n", kind.Description())
		return nil
	}
	for _, n := range numbers {
		cmd.Println(n.String())
	}
	return nil
}
