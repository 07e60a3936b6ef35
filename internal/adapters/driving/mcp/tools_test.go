package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleReport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report numbers with titles", func(t *testing.T) {
		num := &mockNumerologyService{
			report: &domain.Report{
				Profile: domain.BirthProfile{
					FullName:  "John Robert Smith",
					BirthDate: domain.Date{Year: 1988, Month: 4, Day: 15},
				},
				On: domain.Date{Year: 2026, Month: 10, Day: 19},
				Numbers: []domain.DerivedNumber{
					{Kind: domain.KindLifePath, Value: 9},
					{Kind: domain.KindDestiny, Value: 5},
				},
				KarmicLessons: []int{3, 7},
				Interpretations: map[domain.NumberKind]domain.Interpretation{
					domain.KindLifePath: {Number: 9, Title: "The Humanitarian"},
				},
			},
		}
		server := newTestServer(t, &Ports{Numerology: num})

		_, output, err := server.handleReport(ctx, nil, ReportInput{
			FullName:  "John Robert Smith",
			BirthDate: "1988-04-15",
			On:        "2026-10-19",
		})

		require.NoError(t, err)
		assert.Equal(t, "John Robert Smith", output.FullName)
		assert.Equal(t, "1988-04-15", output.BirthDate)
		assert.Equal(t, "2026-10-19", output.On)
		require.Len(t, output.Numbers, 2)
		assert.Equal(t, NumberOutput{Kind: "life_path", Name: "Life Path", Value: 9, Title: "The Humanitarian"}, output.Numbers[0])
		assert.Empty(t, output.Numbers[1].Title)
		assert.Equal(t, []int{3, 7}, output.KarmicLessons)
		assert.Equal(t, domain.Date{Year: 2026, Month: 10, Day: 19}, num.gotOn)
	})

	t.Run("invalid input is rejected before the service", func(t *testing.T) {
		num := &mockNumerologyService{}
		server := newTestServer(t, &Ports{Numerology: num})

		_, _, err := server.handleReport(ctx, nil, ReportInput{FullName: "123", BirthDate: "1988-04-15"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, num.gotInput.FullName)
	})

	t.Run("bad reference date names the on field", func(t *testing.T) {
		server := newTestServer(t, &Ports{Numerology: &mockNumerologyService{}})

		_, _, err := server.handleReport(ctx, nil, ReportInput{FullName: "Ann", BirthDate: "1988-04-15", On: "soon"})

		var fe *domain.FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "on", fe.Field)
	})

	t.Run("service error is returned", func(t *testing.T) {
		server := newTestServer(t, &Ports{Numerology: &mockNumerologyService{err: errors.New("boom")}})

		_, _, err := server.handleReport(ctx, nil, ReportInput{FullName: "Ann", BirthDate: "1988-04-15"})

		assert.EqualError(t, err, "boom")
	})
}

func TestServer_handleCalculate(t *testing.T) {
	num := &mockNumerologyService{
		numbers: []domain.DerivedNumber{{Kind: domain.KindNickname, Value: 1, Label: "Bob"}},
	}
	server := newTestServer(t, &Ports{Numerology: num})

	_, output, err := server.handleCalculate(context.Background(), nil, CalculateInput{
		Kind:      " Nickname ",
		FullName:  "Robert Smith",
		BirthDate: "1988-04-15",
		Nicknames: []string{"Bob"},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.KindNickname, num.gotKind)
	assert.Equal(t, []string{"Bob"}, num.gotInput.Nicknames)
	require.Len(t, output.Numbers, 1)
	assert.Equal(t, "Bob", output.Numbers[0].Label)
	assert.Equal(t, "Nickname", output.Numbers[0].Name)
}

func TestServer_handleOracleRoll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the reading", func(t *testing.T) {
		oracle := &mockOracleService{reading: &domain.OracleReading{
			ID:    "r-1",
			Dice:  []int{6, 5, 3},
			Total: 14,
			Core:  5,
			Card:  domain.OracleCard{Total: 14, Name: "The Traveller", Message: "Go."},
		}}
		server := newTestServer(t, &Ports{Numerology: &mockNumerologyService{}, Oracle: oracle})

		_, output, err := server.handleOracleRoll(ctx, nil, OracleInput{Question: "Should I move?"})

		require.NoError(t, err)
		assert.Equal(t, "Should I move?", oracle.question)
		assert.Equal(t, OracleOutput{
			ID: "r-1", Dice: []int{6, 5, 3}, Total: 14, Core: 5, CardName: "The Traveller", Message: "Go.",
		}, output)
	})

	t.Run("missing oracle", func(t *testing.T) {
		server := newTestServer(t, &Ports{Numerology: &mockNumerologyService{}})

		_, _, err := server.handleOracleRoll(ctx, nil, OracleInput{})

		assert.ErrorIs(t, err, ErrOracleUnavailable)
	})
}

func TestServer_handleInterpret(t *testing.T) {
	ctx := context.Background()

	t.Run("returns interpretation", func(t *testing.T) {
		num := &mockNumerologyService{text: &domain.Interpretation{
			Number: 11, Title: "The Intuitive", Keywords: []string{"insight"}, Description: "A master number.",
		}}
		server := newTestServer(t, &Ports{Numerology: num})

		_, output, err := server.handleInterpret(ctx, nil, InterpretInput{Number: 11})

		require.NoError(t, err)
		assert.Equal(t, 11, output.Number)
		assert.Equal(t, "The Intuitive", output.Title)
		assert.Equal(t, []string{"insight"}, output.Keywords)
	})

	t.Run("unknown number", func(t *testing.T) {
		server := newTestServer(t, &Ports{Numerology: &mockNumerologyService{err: domain.ErrNotFound}})

		_, _, err := server.handleInterpret(ctx, nil, InterpretInput{Number: 44})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
