package domain

import (
	"errors"
	"strings"
	"time"
)

// BirthProfile is the validated input to every numerology derivation.
// It is not mutated after construction.
type BirthProfile struct {
	// ID is the unique identifier for saved profiles. Empty for ad-hoc input.
	ID string `json:"id,omitempty"`

	// FullName is the full name given at birth.
	FullName string `json:"full_name"`

	// CurrentName is the name in use today, if different from FullName.
	CurrentName string `json:"current_name,omitempty"`

	// Nicknames are other names the person goes by.
	Nicknames []string `json:"nicknames,omitempty"`

	// BirthDate is the calendar date of birth.
	BirthDate Date `json:"birth_date"`

	// CreatedAt is when the profile was saved.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ProfileInput is unvalidated profile data as collected from a form or flags.
type ProfileInput struct {
	FullName    string
	CurrentName string
	Nicknames   []string
	BirthDate   string
}

// NewBirthProfile validates input against the reference date today and
// returns a profile. Errors are *FieldError values wrapping ErrInvalidInput.
func NewBirthProfile(in ProfileInput, today Date) (BirthProfile, error) {
	date, err := ParseDate(in.BirthDate)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			fe.Field = "birth_date"
		}
		return BirthProfile{}, err
	}

	p := BirthProfile{
		FullName:    normaliseName(in.FullName),
		CurrentName: normaliseName(in.CurrentName),
		BirthDate:   date,
	}
	for _, nick := range in.Nicknames {
		if n := normaliseName(nick); n != "" {
			p.Nicknames = append(p.Nicknames, n)
		}
	}

	if err := p.Validate(today); err != nil {
		return BirthProfile{}, err
	}
	return p, nil
}

// Validate checks the invariants the numerology engine relies on.
func (p *BirthProfile) Validate(today Date) error {
	if strings.TrimSpace(p.FullName) == "" {
		return NewFieldError("full_name", "is required")
	}
	if !hasLatinLetter(p.FullName) {
		return NewFieldError("full_name", "must contain at least one letter A-Z")
	}
	if p.CurrentName != "" && !hasLatinLetter(p.CurrentName) {
		return NewFieldError("current_name", "must contain at least one letter A-Z")
	}
	if err := p.BirthDate.Validate(); err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			fe.Field = "birth_date"
		}
		return err
	}
	if p.BirthDate.Year < MinBirthYear {
		return NewFieldError("birth_date", "year must be %d or later", MinBirthYear)
	}
	if !today.IsZero() && p.BirthDate.After(today) {
		return NewFieldError("birth_date", "cannot be in the future")
	}
	return nil
}

// NameInUse returns CurrentName when set, otherwise FullName.
func (p *BirthProfile) NameInUse() string {
	if p.CurrentName != "" {
		return p.CurrentName
	}
	return p.FullName
}

// normaliseName trims and collapses internal whitespace.
func normaliseName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasLatinLetter(s string) bool {
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return true
		}
	}
	return false
}
