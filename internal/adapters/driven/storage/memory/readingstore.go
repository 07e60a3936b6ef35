package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Ensure ReadingStore implements the interface.
var _ driven.ReadingStore = (*ReadingStore)(nil)

// ReadingStore is an in-memory implementation of driven.ReadingStore.
// Readings are kept in insertion order.
type ReadingStore struct {
	mu       sync.RWMutex
	readings []domain.OracleReading
}

// NewReadingStore creates a new in-memory reading store.
func NewReadingStore() *ReadingStore {
	return &ReadingStore{}
}

// Save stores a reading.
func (s *ReadingStore) Save(_ context.Context, reading domain.OracleReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reading.Dice = append([]int(nil), reading.Dice...)
	s.readings = append(s.readings, reading)
	return nil
}

// Get retrieves a reading by ID.
func (s *ReadingStore) Get(_ context.Context, id string) (*domain.OracleReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.readings {
		if s.readings[i].ID == id {
			reading := s.readings[i]
			return &reading, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns up to limit readings, newest first.
func (s *ReadingStore) List(_ context.Context, limit int) ([]domain.OracleReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.readings)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]domain.OracleReading, 0, n)
	for i := len(s.readings) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.readings[i])
	}
	return result, nil
}
