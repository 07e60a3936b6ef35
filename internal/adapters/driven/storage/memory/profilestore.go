package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.BirthProfile
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.BirthProfile),
	}
}

// Save stores or updates a profile.
func (s *ProfileStore) Save(_ context.Context, profile domain.BirthProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.Nicknames = append([]string(nil), profile.Nicknames...)
	s.profiles[profile.ID] = profile
	return nil
}

// Get retrieves a profile by ID.
func (s *ProfileStore) Get(_ context.Context, id string) (*domain.BirthProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	profile.Nicknames = append([]string(nil), profile.Nicknames...)
	return &profile, nil
}

// Delete removes a profile.
func (s *ProfileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

// List returns all saved profiles.
func (s *ProfileStore) List(_ context.Context) ([]domain.BirthProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.BirthProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		result = append(result, profile)
	}
	return result, nil
}
