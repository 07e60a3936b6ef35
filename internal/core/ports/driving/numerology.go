package driving

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// NumerologyService computes numerology reports.
type NumerologyService interface {
	// Report computes every derived number for profile on the reference date.
	Report(ctx context.Context, profile domain.BirthProfile, on domain.Date) (*domain.Report, error)

	// Calculate computes the numbers of a single kind.
	// Most kinds yield one number; nickname yields one per nickname.
	Calculate(kind domain.NumberKind, profile domain.BirthProfile, on domain.Date) ([]domain.DerivedNumber, error)

	// Interpret returns the canned text for a number.
	Interpret(ctx context.Context, n int) (*domain.Interpretation, error)
}

// ProfileService manages saved birth profiles.
type ProfileService interface {
	// Add validates and saves a profile, assigning an ID when empty.
	Add(ctx context.Context, profile domain.BirthProfile) (*domain.BirthProfile, error)

	// Get retrieves a profile by ID.
	Get(ctx context.Context, id string) (*domain.BirthProfile, error)

	// List returns all profiles sorted by name.
	List(ctx context.Context) ([]domain.BirthProfile, error)

	// Remove deletes a profile.
	Remove(ctx context.Context, id string) error
}
