package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// profileFlags collects the person a command works on, either from a saved
// profile or from name and date flags.
type profileFlags struct {
	name        string
	date        string
	currentName string
	nicknames   []string
	on          string
	profileID   string

	// allowSaved enables --profile.
	allowSaved bool
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name given at birth")
	cmd.Flags().StringVar(&f.date, "date", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.currentName, "current-name", "", "name in use today, if different")
	cmd.Flags().StringArrayVar(&f.nicknames, "nickname", nil, "nickname (repeatable)")
	cmd.Flags().StringVar(&f.on, "on", "", "reference date for personal cycles (default today)")
	if f.allowSaved {
		cmd.Flags().StringVar(&f.profileID, "profile", "", "use a saved profile instead of --name and --date")
	}
}

// referenceDate returns the --on date or today.
func (f *profileFlags) referenceDate() (domain.Date, error) {
	if strings.TrimSpace(f.on) == "" {
		return domain.Today(), nil
	}
	on, err := domain.ParseDate(f.on)
	if err != nil {
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			fe.Field = "on"
		}
		return domain.Date{}, err
	}
	return on, nil
}

// resolve returns the validated profile and reference date.
func (f *profileFlags) resolve(ctx context.Context) (domain.BirthProfile, domain.Date, error) {
	on, err := f.referenceDate()
	if err != nil {
		return domain.BirthProfile{}, domain.Date{}, err
	}

	if f.profileID != "" {
		if profileService == nil {
			return domain.BirthProfile{}, domain.Date{}, errors.New("profile service not configured")
		}
		profile, err := profileService.Get(ctx, f.profileID)
		if err != nil {
			return domain.BirthProfile{}, domain.Date{}, fmt.Errorf("loading profile %s: %w", f.profileID, err)
		}
		return *profile, on, nil
	}

	if f.name == "" || f.date == "" {
		if f.allowSaved {
			return domain.BirthProfile{}, domain.Date{}, errors.New("either --profile or both --name and --date are required")
		}
		return domain.BirthProfile{}, domain.Date{}, errors.New("--name and --date are required")
	}

	profile, err := domain.NewBirthProfile(domain.ProfileInput{
		FullName:    f.name,
		CurrentName: f.currentName,
		Nicknames:   f.nicknames,
		BirthDate:   f.date,
	}, on)
	if err != nil {
		return domain.BirthProfile{}, domain.Date{}, err
	}
	return profile, on, nil
}
