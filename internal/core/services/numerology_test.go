package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

func TestNumerologyService_Report(t *testing.T) {
	service := NewNumerologyService(newStubCatalog())

	report, err := service.Report(context.Background(), testProfile(), testOn)
	require.NoError(t, err)

	want := map[domain.NumberKind]int{
		domain.KindLifePath:      9,
		domain.KindDestiny:       5,
		domain.KindSoulUrge:      8,
		domain.KindPersonality:   6,
		domain.KindBirthday:      15,
		domain.KindMaturity:      5,
		domain.KindBalance:       11,
		domain.KindHiddenPassion: 2,
		domain.KindChallenge1:    2,
		domain.KindChallenge2:    2,
		domain.KindChallenge3:    0,
		domain.KindChallenge4:    4,
		domain.KindPinnacle1:     1,
		domain.KindPinnacle2:     5,
		domain.KindPinnacle3:     6,
		domain.KindPinnacle4:     3,
		domain.KindPersonalYear:  11,
		domain.KindPersonalMonth: 3,
		domain.KindPersonalDay:   4,
	}
	for kind, value := range want {
		n, ok := report.Get(kind)
		require.True(t, ok, "missing %s", kind)
		assert.Equal(t, value, n.Value, "kind %s", kind)
	}

	assert.Equal(t, []int{3, 7}, report.KarmicLessons)
	karmic := report.All(domain.KindKarmicLessons)
	require.Len(t, karmic, 2)
	assert.Equal(t, 3, karmic[0].Value)
	assert.Equal(t, 7, karmic[1].Value)

	_, ok := report.Get(domain.KindCurrentDestiny)
	assert.False(t, ok, "no current name, no current destiny")
	_, ok = report.Get(domain.KindBridge)
	assert.False(t, ok)
	assert.Empty(t, report.All(domain.KindNickname))

	wantSpans := []domain.PinnacleSpan{
		{Number: 1, FromAge: 0, ToAge: 27},
		{Number: 5, FromAge: 28, ToAge: 36},
		{Number: 6, FromAge: 37, ToAge: 45},
		{Number: 3, FromAge: 46},
	}
	if diff := cmp.Diff(wantSpans, report.Pinnacles); diff != "" {
		t.Errorf("pinnacle spans mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, testOn, report.On)
	assert.Equal(t, "John Robert Smith", report.Profile.FullName)
}

func TestNumerologyService_Report_Order(t *testing.T) {
	service := NewNumerologyService(nil)

	p := testProfile()
	p.CurrentName = "Johnny Smith"
	p.Nicknames = []string{"Bob", "JR"}

	report, err := service.Report(context.Background(), p, testOn)
	require.NoError(t, err)

	var kinds []domain.NumberKind
	for _, n := range report.Numbers {
		kinds = append(kinds, n.Kind)
	}
	want := []domain.NumberKind{
		domain.KindLifePath, domain.KindDestiny, domain.KindSoulUrge, domain.KindPersonality,
		domain.KindBirthday, domain.KindMaturity, domain.KindBalance, domain.KindHiddenPassion,
		domain.KindKarmicLessons, domain.KindKarmicLessons,
		domain.KindChallenge1, domain.KindChallenge2, domain.KindChallenge3, domain.KindChallenge4,
		domain.KindPinnacle1, domain.KindPinnacle2, domain.KindPinnacle3, domain.KindPinnacle4,
		domain.KindPersonalYear, domain.KindPersonalMonth, domain.KindPersonalDay,
		domain.KindCurrentDestiny, domain.KindBridge,
		domain.KindNickname, domain.KindNickname,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("number order mismatch (-want +got):\n%s", diff)
	}
}

func TestNumerologyService_Report_CurrentNameAndNicknames(t *testing.T) {
	service := NewNumerologyService(nil)

	p := testProfile()
	p.CurrentName = "Johnny Smith"
	p.Nicknames = []string{"Bob"}

	report, err := service.Report(context.Background(), p, testOn)
	require.NoError(t, err)

	current, ok := report.Get(domain.KindCurrentDestiny)
	require.True(t, ok)
	assert.Equal(t, 11, current.Value)
	assert.Equal(t, "Johnny Smith", current.Label)

	bridge, ok := report.Get(domain.KindBridge)
	require.True(t, ok)
	assert.Equal(t, 6, bridge.Value)

	nick, ok := report.Get(domain.KindNickname)
	require.True(t, ok)
	assert.Equal(t, 1, nick.Value)
	assert.Equal(t, "Bob", nick.Label)

	// The birth name still drives the core numbers.
	destiny, _ := report.Get(domain.KindDestiny)
	assert.Equal(t, 5, destiny.Value)
}

func TestNumerologyService_Report_Interpretations(t *testing.T) {
	service := NewNumerologyService(newStubCatalog())

	report, err := service.Report(context.Background(), testProfile(), testOn)
	require.NoError(t, err)

	lp, ok := report.Interpretations[domain.KindLifePath]
	require.True(t, ok)
	assert.Equal(t, 9, lp.Number)
	assert.Equal(t, "Number 9", lp.Title)

	// Birthday 15 has no catalog text.
	_, ok = report.Interpretations[domain.KindBirthday]
	assert.False(t, ok)

	_, ok = report.Interpretations[domain.KindKarmicLessons]
	assert.False(t, ok)

	assert.Equal(t, map[int]string{3: "Lesson 3", 7: "Lesson 7"}, report.KarmicNotes)
}

func TestNumerologyService_Report_NoCatalog(t *testing.T) {
	service := NewNumerologyService(nil)

	report, err := service.Report(context.Background(), testProfile(), testOn)
	require.NoError(t, err)
	assert.Empty(t, report.Interpretations)
	assert.Empty(t, report.KarmicNotes)
	assert.NotEmpty(t, report.Numbers)
}

func TestNumerologyService_Report_ZeroDateMeansToday(t *testing.T) {
	service := NewNumerologyService(nil)

	report, err := service.Report(context.Background(), testProfile(), domain.Date{})
	require.NoError(t, err)
	assert.Equal(t, domain.Today(), report.On)
}

func TestNumerologyService_Report_InvalidProfile(t *testing.T) {
	service := NewNumerologyService(nil)

	tests := []struct {
		name    string
		profile domain.BirthProfile
		field   string
	}{
		{"empty name", domain.BirthProfile{BirthDate: domain.Date{Year: 1990, Month: 1, Day: 1}}, "full_name"},
		{"no letters", domain.BirthProfile{FullName: "123", BirthDate: domain.Date{Year: 1990, Month: 1, Day: 1}}, "full_name"},
		{"bad date", domain.BirthProfile{FullName: "Ann", BirthDate: domain.Date{Year: 1990, Month: 2, Day: 30}}, "birth_date"},
		{"future date", domain.BirthProfile{FullName: "Ann", BirthDate: domain.Date{Year: 2030, Month: 1, Day: 1}}, "birth_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Report(context.Background(), tt.profile, testOn)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			var fe *domain.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestNumerologyService_InvalidReferenceDate(t *testing.T) {
	service := NewNumerologyService(nil)

	tests := []struct {
		name string
		on   domain.Date
	}{
		{"month 13", domain.Date{Year: 2026, Month: 13, Day: 1}},
		{"day 0", domain.Date{Year: 2026, Month: 5, Day: 0}},
		{"february 30", domain.Date{Year: 2026, Month: 2, Day: 30}},
		{"year 0", domain.Date{Year: 0, Month: 1, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Report(context.Background(), testProfile(), tt.on)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var fe *domain.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "on", fe.Field)

			_, err = service.Calculate(domain.KindPersonalYear, testProfile(), tt.on)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "on", fe.Field)
		})
	}
}

func TestNumerologyService_Report_CancelledContext(t *testing.T) {
	service := NewNumerologyService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Report(ctx, testProfile(), testOn)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNumerologyService_Report_Deterministic(t *testing.T) {
	service := NewNumerologyService(newStubCatalog())

	a, err := service.Report(context.Background(), testProfile(), testOn)
	require.NoError(t, err)
	b, err := service.Report(context.Background(), testProfile(), testOn)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("reports differ (-a +b):\n%s", diff)
	}
}

func TestNumerologyService_Calculate(t *testing.T) {
	service := NewNumerologyService(nil)

	got, err := service.Calculate(domain.KindLifePath, testProfile(), testOn)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].Value)

	karmic, err := service.Calculate(domain.KindKarmicLessons, testProfile(), testOn)
	require.NoError(t, err)
	assert.Len(t, karmic, 2)
}

func TestNumerologyService_Calculate_NoKarmicLessons(t *testing.T) {
	service := NewNumerologyService(nil)

	p := domain.BirthProfile{FullName: "Abcdefghi", BirthDate: domain.Date{Year: 1990, Month: 1, Day: 1}}
	got, err := service.Calculate(domain.KindKarmicLessons, p, testOn)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNumerologyService_Calculate_Errors(t *testing.T) {
	service := NewNumerologyService(nil)

	_, err := service.Calculate("lucky_number", testProfile(), testOn)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = service.Calculate(domain.KindBridge, testProfile(), testOn)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "current_name", fe.Field)

	_, err = service.Calculate(domain.KindCurrentDestiny, testProfile(), testOn)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "current_name", fe.Field)

	_, err = service.Calculate(domain.KindNickname, testProfile(), testOn)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nicknames", fe.Field)
}

func TestNumerologyService_Calculate_Nicknames(t *testing.T) {
	service := NewNumerologyService(nil)

	p := testProfile()
	p.Nicknames = []string{"Bob", "Ki"}
	got, err := service.Calculate(domain.KindNickname, p, testOn)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.DerivedNumber{Kind: domain.KindNickname, Value: 1, Label: "Bob"}, got[0])
	assert.Equal(t, domain.DerivedNumber{Kind: domain.KindNickname, Value: 11, Label: "Ki"}, got[1])
}

func TestNumerologyService_Interpret(t *testing.T) {
	service := NewNumerologyService(newStubCatalog())

	text, err := service.Interpret(context.Background(), 22)
	require.NoError(t, err)
	assert.Equal(t, "Number 22", text.Title)

	_, err = service.Interpret(context.Background(), 15)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewNumerologyService(nil).Interpret(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNumerologyService_AllValuesInRange(t *testing.T) {
	service := NewNumerologyService(nil)
	names := []string{"Ann", "Zoe Quinn", "Maximilian Xavier Young", "O'Brien-Smith", "Li"}

	for _, name := range names {
		for year := 1900; year <= 2020; year += 17 {
			for month := 1; month <= 12; month += 5 {
				p := domain.BirthProfile{
					FullName:  name,
					BirthDate: domain.Date{Year: year, Month: month, Day: 1 + (year+month)%28},
				}
				report, err := service.Report(context.Background(), p, testOn)
				require.NoError(t, err)
				for _, n := range report.Numbers {
					if n.Kind == domain.KindBirthday {
						assert.True(t, n.Value >= 1 && n.Value <= 22, "birthday %d", n.Value)
						continue
					}
					ok := (n.Value >= 0 && n.Value <= 9) || n.Value == 11 || n.Value == 22 || n.Value == 33
					assert.True(t, ok, "%s = %d for %s", n.Kind, n.Value, name)
				}
			}
		}
	}
}
