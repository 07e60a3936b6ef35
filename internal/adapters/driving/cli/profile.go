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
	profileAddFlags = profileFlags{}
	profileListJSON bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved birth profiles",
	Long: `Saved profiles can be used with --profile instead of --name and --date
by report, email, share and chat.`,
}

var profileAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a birth profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileAdd,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved profile",
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileRemove,
}

func init() {
	profileAddFlags.register(profileAddCmd)
	profileListCmd.Flags().BoolVar(&profileListJSON, "json", false, "output as JSON")

	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileAdd(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profile, _, err := profileAddFlags.resolve(cmd.Context())
	if err != nil {
		return err
	}

	saved, err := profileService.Add(cmd.Context(), profile)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	cmd.Printf("Saved profile %s (%s)\n", saved.ID, saved.FullName)
	return nil
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profiles, err := profileService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if profileListJSON {
		data, err := json.MarshalIndent(profiles, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profiles: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(profiles) == 0 {
		cmd.Println("No saved profiles. Add one with 'numen profile add'.")
		return nil
	}

	cmd.Println("Profiles:")
	for i := range profiles {
		p := &profiles[i]
		cmd.Printf("  %s  %s  %s\n", p.ID, p.BirthDate, p.FullName)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	p, err := profileService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	cmd.Printf("ID:         %s\n", p.ID)
	cmd.Printf("Name:       %s\n", p.FullName)
	if p.CurrentName != "" {
		cmd.Printf("Current:    %s\n", p.CurrentName)
	}
	if len(p.Nicknames) > 0 {
		cmd.Printf("Nicknames:  %s\n", strings.Join(p.Nicknames, ", "))
	}
	cmd.Printf("Born:       %s\n", p.BirthDate)
	if !p.CreatedAt.IsZero() {
		cmd.Printf("Saved:      %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if err := profileService.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("profile %s not found", args[0])
		}
		return fmt.Errorf("failed to remove profile: %w", err)
	}

	cmd.Printf("Removed profile %s\n", args[0])
	return nil
}
