package driven

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// ProfileStore persists saved birth profiles.
type ProfileStore interface {
	// Save stores or updates a profile.
	Save(ctx context.Context, profile domain.BirthProfile) error

	// Get retrieves a profile by ID.
	// Returns domain.ErrNotFound if no profile has the ID.
	Get(ctx context.Context, id string) (*domain.BirthProfile, error)

	// Delete removes a profile.
	// Returns domain.ErrNotFound if no profile has the ID.
	Delete(ctx context.Context, id string) error

	// List returns all saved profiles.
	List(ctx context.Context) ([]domain.BirthProfile, error)
}

// ReadingStore persists oracle readings.
type ReadingStore interface {
	// Save stores a reading.
	Save(ctx context.Context, reading domain.OracleReading) error

	// Get retrieves a reading by ID.
	// Returns domain.ErrNotFound if no reading has the ID.
	Get(ctx context.Context, id string) (*domain.OracleReading, error)

	// List returns up to limit readings, newest first.
	// A limit of zero or less returns every reading.
	List(ctx context.Context, limit int) ([]domain.OracleReading, error)
}
