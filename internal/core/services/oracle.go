package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/numerology"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// maxQuestionLength bounds the oracle question in runes.
const maxQuestionLength = 500

// Ensure OracleService implements the interface.
var _ driving.OracleService = (*OracleService)(nil)

// OracleService rolls the dice oracle.
type OracleService struct {
	dice  driven.Dice
	deck  driven.OracleDeck
	store driven.ReadingStore
	now   func() time.Time
}

// NewOracleService creates a new oracle service.
// The store is optional; without it readings are not recorded.
func NewOracleService(dice driven.Dice, deck driven.OracleDeck, store driven.ReadingStore) *OracleService {
	return &OracleService{
		dice:  dice,
		deck:  deck,
		store: store,
		now:   time.Now,
	}
}

// Roll rolls the dice, draws the card and records the reading.
// An empty question asks for a general reading.
func (s *OracleService) Roll(ctx context.Context, question string) (*domain.OracleReading, error) {
	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) > maxQuestionLength {
		return nil, domain.NewFieldError("question", "must be at most %d characters", maxQuestionLength)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dice := make([]int, domain.OracleDiceCount)
	total := 0
	for i := range dice {
		face, err := s.dice.Roll(domain.OracleDieFaces)
		if err != nil {
			return nil, fmt.Errorf("roll die: %w", err)
		}
		if face < 1 || face > domain.OracleDieFaces {
			return nil, fmt.Errorf("roll die: face %d out of range", face)
		}
		dice[i] = face
		total += face
	}

	card, ok := s.deck.Card(total)
	if !ok {
		return nil, fmt.Errorf("oracle card for %d: %w", total, domain.ErrNotFound)
	}

	reading := &domain.OracleReading{
		ID:        uuid.New().String(),
		Question:  question,
		Dice:      dice,
		Total:     total,
		Core:      numerology.ReduceToCore(total),
		Card:      card,
		CreatedAt: s.now(),
	}
	logger.Debug("Oracle roll %v = %d (%s)", dice, total, card.Name)

	if s.store != nil {
		if err := s.store.Save(ctx, *reading); err != nil {
			return nil, fmt.Errorf("save reading: %w", err)
		}
	}
	return reading, nil
}

// History returns up to limit readings, newest first.
func (s *OracleService) History(ctx context.Context, limit int) ([]domain.OracleReading, error) {
	if s.store == nil {
		return []domain.OracleReading{}, nil
	}
	readings, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return readings, nil
}
