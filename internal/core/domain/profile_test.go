package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = Date{2026, 10, 19}

func TestNewBirthProfile(t *testing.T) {
	p, err := NewBirthProfile(ProfileInput{
		FullName:    "  John   Robert  Smith ",
		CurrentName: "Johnny Smith",
		Nicknames:   []string{"JR", "  ", "Jack"},
		BirthDate:   "1988-04-15",
	}, testToday)

	require.NoError(t, err)
	assert.Equal(t, "John Robert Smith", p.FullName)
	assert.Equal(t, "Johnny Smith", p.CurrentName)
	assert.Equal(t, []string{"JR", "Jack"}, p.Nicknames)
	assert.Equal(t, Date{1988, 4, 15}, p.BirthDate)
	assert.Equal(t, "Johnny Smith", p.NameInUse())
}

func TestNewBirthProfile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    ProfileInput
		field string
	}{
		{
			name:  "empty name",
			in:    ProfileInput{FullName: "   ", BirthDate: "1988-04-15"},
			field: "full_name",
		},
		{
			name:  "name without letters",
			in:    ProfileInput{FullName: "123 !", BirthDate: "1988-04-15"},
			field: "full_name",
		},
		{
			name:  "current name without letters",
			in:    ProfileInput{FullName: "Ann", CurrentName: "42", BirthDate: "1988-04-15"},
			field: "current_name",
		},
		{
			name:  "missing date",
			in:    ProfileInput{FullName: "Ann"},
			field: "birth_date",
		},
		{
			name:  "bad month",
			in:    ProfileInput{FullName: "Ann", BirthDate: "1988-13-15"},
			field: "birth_date",
		},
		{
			name:  "future date",
			in:    ProfileInput{FullName: "Ann", BirthDate: "2026-10-20"},
			field: "birth_date",
		},
		{
			name:  "too old",
			in:    ProfileInput{FullName: "Ann", BirthDate: "1799-12-31"},
			field: "birth_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBirthProfile(tt.in, testToday)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBirthProfile_BornToday(t *testing.T) {
	_, err := NewBirthProfile(ProfileInput{FullName: "Ann", BirthDate: testToday.String()}, testToday)
	assert.NoError(t, err)
}

func TestBirthProfile_ValidateWithoutReferenceDate(t *testing.T) {
	p := BirthProfile{FullName: "Ann", BirthDate: Date{2999, 1, 1}}
	assert.NoError(t, p.Validate(Date{}))
}

func TestBirthProfile_NameInUse(t *testing.T) {
	p := BirthProfile{FullName: "Ann Lee"}
	assert.Equal(t, "Ann Lee", p.NameInUse())
}
