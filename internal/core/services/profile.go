package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages saved birth profiles.
type ProfileService struct {
	store driven.ProfileStore
	now   func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(store driven.ProfileStore) *ProfileService {
	return &ProfileService{
		store: store,
		now:   time.Now,
	}
}

// Add validates and saves a profile, assigning an ID when empty.
// Saving an existing ID updates the profile and keeps its creation time.
func (s *ProfileService) Add(ctx context.Context, profile domain.BirthProfile) (*domain.BirthProfile, error) {
	now := s.now()
	if err := profile.Validate(domain.DateOf(now)); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.CreatedAt = now
	existing, err := s.store.Get(ctx, profile.ID)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get profile: %w", err)
	}
	profile.UpdatedAt = now

	if err := s.store.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &profile, nil
}

// Get retrieves a profile by ID.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.BirthProfile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewFieldError("id", "is required")
	}
	profile, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return profile, nil
}

// List returns all profiles sorted by name.
func (s *ProfileService) List(ctx context.Context) ([]domain.BirthProfile, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := strings.ToLower(profiles[i].FullName), strings.ToLower(profiles[j].FullName)
		if a != b {
			return a < b
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

// Remove deletes a profile.
func (s *ProfileService) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewFieldError("id", "is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove profile %s: %w", id, err)
	}
	return nil
}
