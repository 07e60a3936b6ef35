package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/numerology"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// Ensure NumerologyService implements the interface.
var _ driving.NumerologyService = (*NumerologyService)(nil)

// NumerologyService assembles engine results into reports.
type NumerologyService struct {
	catalog driven.InterpretationCatalog
}

// NewNumerologyService creates a new numerology service.
// The catalog is optional; without it reports carry no interpretations.
func NewNumerologyService(catalog driven.InterpretationCatalog) *NumerologyService {
	return &NumerologyService{catalog: catalog}
}

// Report computes every derived number for profile on the reference date.
// A zero reference date means today.
func (s *NumerologyService) Report(
	ctx context.Context, profile domain.BirthProfile, on domain.Date,
) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	on, err := referenceDate(on)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(on); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}

	logger.Section("Numerology Report")
	logger.Debug("Name: %q, born %s, reference %s", profile.FullName, profile.BirthDate, on)

	numbers := derive(profile, on)
	lifePath := valueOf(numbers, domain.KindLifePath)
	karmic := numerology.KarmicLessons(profile.FullName)

	report := &domain.Report{
		Profile:         profile,
		On:              on,
		Numbers:         numbers,
		KarmicLessons:   karmic,
		Pinnacles:       pinnacleSpans(profile.BirthDate, lifePath),
		Interpretations: make(map[domain.NumberKind]domain.Interpretation),
		KarmicNotes:     make(map[int]string),
	}

	if s.catalog == nil {
		logger.Debug("No interpretation catalog, skipping texts")
		return report, nil
	}
	for _, n := range numbers {
		if n.Kind == domain.KindKarmicLessons || n.Kind == domain.KindNickname {
			continue
		}
		if _, done := report.Interpretations[n.Kind]; done {
			continue
		}
		if text, ok := s.catalog.Number(n.Value); ok {
			report.Interpretations[n.Kind] = text
		} else {
			logger.Debug("No interpretation for %s = %d", n.Kind, n.Value)
		}
	}
	for _, digit := range karmic {
		if note, ok := s.catalog.KarmicLesson(digit); ok {
			report.KarmicNotes[digit] = note
		}
	}

	return report, nil
}

// referenceDate defaults a zero date to today and rejects impossible dates.
func referenceDate(on domain.Date) (domain.Date, error) {
	if on.IsZero() {
		return domain.Today(), nil
	}
	if err := on.Validate(); err != nil {
		return domain.Date{}, domain.NewFieldError("on", "invalid reference date: %v", err)
	}
	return on, nil
}

// Calculate computes the numbers of a single kind.
func (s *NumerologyService) Calculate(
	kind domain.NumberKind, profile domain.BirthProfile, on domain.Date,
) ([]domain.DerivedNumber, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("number kind %q: %w", kind, domain.ErrUnsupportedType)
	}
	on, err := referenceDate(on)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(on); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}

	switch kind {
	case domain.KindCurrentDestiny, domain.KindBridge:
		if profile.CurrentName == "" {
			return nil, domain.NewFieldError("current_name", "is required for %s", kind.Description())
		}
	case domain.KindNickname:
		if len(profile.Nicknames) == 0 {
			return nil, domain.NewFieldError("nicknames", "at least one nickname is required")
		}
	}

	var out []domain.DerivedNumber
	for _, n := range derive(profile, on) {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	if out == nil {
		out = []domain.DerivedNumber{}
	}
	return out, nil
}

// Interpret returns the canned text for a number.
func (s *NumerologyService) Interpret(ctx context.Context, n int) (*domain.Interpretation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.catalog == nil {
		return nil, fmt.Errorf("interpretation for %d: %w", n, domain.ErrNotFound)
	}
	text, ok := s.catalog.Number(n)
	if !ok {
		return nil, fmt.Errorf("interpretation for %d: %w", n, domain.ErrNotFound)
	}
	return &text, nil
}

// derive computes every number for a validated profile in report order.
func derive(p domain.BirthProfile, on domain.Date) []domain.DerivedNumber {
	m, d, y := p.BirthDate.Month, p.BirthDate.Day, p.BirthDate.Year
	name := p.FullName

	lifePath := numerology.LifePath(m, d, y)
	destiny := numerology.Destiny(name)
	challenges := numerology.Challenges(m, d, y)
	pinnacles := numerology.Pinnacles(m, d, y)
	personalYear := numerology.PersonalYear(m, d, on.Year)
	personalMonth := numerology.PersonalMonth(personalYear, on.Month)

	numbers := []domain.DerivedNumber{
		{Kind: domain.KindLifePath, Value: lifePath},
		{Kind: domain.KindDestiny, Value: destiny},
		{Kind: domain.KindSoulUrge, Value: numerology.SoulUrge(name)},
		{Kind: domain.KindPersonality, Value: numerology.Personality(name)},
		{Kind: domain.KindBirthday, Value: numerology.BirthdayNumber(d)},
		{Kind: domain.KindMaturity, Value: numerology.Maturity(lifePath, destiny)},
		{Kind: domain.KindBalance, Value: numerology.Balance(name)},
		{Kind: domain.KindHiddenPassion, Value: numerology.HiddenPassion(name)},
	}
	for _, digit := range numerology.KarmicLessons(name) {
		numbers = append(numbers, domain.DerivedNumber{Kind: domain.KindKarmicLessons, Value: digit})
	}

	challengeKinds := [4]domain.NumberKind{
		domain.KindChallenge1, domain.KindChallenge2, domain.KindChallenge3, domain.KindChallenge4,
	}
	for i, c := range challenges {
		numbers = append(numbers, domain.DerivedNumber{Kind: challengeKinds[i], Value: c})
	}
	pinnacleKinds := [4]domain.NumberKind{
		domain.KindPinnacle1, domain.KindPinnacle2, domain.KindPinnacle3, domain.KindPinnacle4,
	}
	for i, v := range pinnacles {
		numbers = append(numbers, domain.DerivedNumber{Kind: pinnacleKinds[i], Value: v})
	}

	numbers = append(numbers,
		domain.DerivedNumber{Kind: domain.KindPersonalYear, Value: personalYear},
		domain.DerivedNumber{Kind: domain.KindPersonalMonth, Value: personalMonth},
		domain.DerivedNumber{Kind: domain.KindPersonalDay, Value: numerology.PersonalDay(personalMonth, on.Day)},
	)

	if p.CurrentName != "" {
		current := numerology.Destiny(p.CurrentName)
		numbers = append(numbers,
			domain.DerivedNumber{Kind: domain.KindCurrentDestiny, Value: current, Label: p.CurrentName},
			domain.DerivedNumber{Kind: domain.KindBridge, Value: numerology.Bridge(destiny, current)},
		)
	}
	for _, nick := range p.Nicknames {
		numbers = append(numbers, domain.DerivedNumber{
			Kind:  domain.KindNickname,
			Value: numerology.Destiny(nick),
			Label: nick,
		})
	}

	return numbers
}

// pinnacleSpans attaches age ranges to the four pinnacles.
func pinnacleSpans(birth domain.Date, lifePath int) []domain.PinnacleSpan {
	values := numerology.Pinnacles(birth.Month, birth.Day, birth.Year)
	ends := numerology.PinnacleAges(lifePath)
	return []domain.PinnacleSpan{
		{Number: values[0], FromAge: 0, ToAge: ends[0]},
		{Number: values[1], FromAge: ends[0] + 1, ToAge: ends[1]},
		{Number: values[2], FromAge: ends[1] + 1, ToAge: ends[2]},
		{Number: values[3], FromAge: ends[2] + 1},
	}
}

func valueOf(numbers []domain.DerivedNumber, kind domain.NumberKind) int {
	for _, n := range numbers {
		if n.Kind == kind {
			return n.Value
		}
	}
	return 0
}
