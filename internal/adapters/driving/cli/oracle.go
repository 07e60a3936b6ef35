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
	oracleJSON         bool
	oracleHistoryLimit int
)

var oracleCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Consult the dice oracle",
}

var oracleRollCmd = &cobra.Command{
	Use:   "roll [question]",
	Short: "Roll the dice and draw a card",
	Long: `Rolls two dice and draws the oracle card for their total.
The reading is saved to your history.`,
	RunE: runOracleRoll,
}

var oracleHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent readings",
	Args:  cobra.NoArgs,
	RunE:  runOracleHistory,
}

func init() {
	oracleRollCmd.Flags().BoolVar(&oracleJSON, "json", false, "output as JSON")
	oracleHistoryCmd.Flags().IntVarP(&oracleHistoryLimit, "limit", "n", 10, "maximum number of readings")

	oracleCmd.AddCommand(oracleRollCmd)
	oracleCmd.AddCommand(oracleHistoryCmd)
	rootCmd.AddCommand(oracleCmd)
}

func runOracleRoll(cmd *cobra.Command, args []string) error {
	if oracleService == nil {
		return errors.New("oracle service not configured")
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	reading, err := oracleService.Roll(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("oracle failed: %w", err)
	}

	if oracleJSON {
		data, err := json.MarshalIndent(reading, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reading: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printReading(cmd, reading)
	return nil
}

func printReading(cmd *cobra.Command, r *domain.OracleReading) {
	if r.Question != "" {
		cmd.Printf("Question: %s\n", r.Question)
	}
	dice := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		dice[i] = fmt.Sprint(d)
	}
	cmd.Printf("Dice: %s (total %d, core %d)\n", strings.Join(dice, " + "), r.Total, r.Core)
	cmd.Println()
	cmd.Printf("  %s\n", r.Card.Name)
	cmd.Printf("  %s\n", r.Card.Message)
}

func runOracleHistory(cmd *cobra.Command, _ []string) error {
	if oracleService == nil {
		return errors.New("oracle service not configured")
	}

	readings, err := oracleService.History(cmd.Context(), oracleHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(readings) == 0 {
		cmd.Println("No readings yet. Try 'numen oracle roll'.")
		return nil
	}

	for i := range readings {
		r := &readings[i]
		question := r.Question
		if question == "" {
			question = "(no question)"
		}
		cmd.Printf("%s  %2d  %-20s %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Total, r.Card.Name, question)
	}
	return nil
}
