package mcp

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// mockNumerologyService is a mock implementation of driving.NumerologyService.
type mockNumerologyService struct {
	report   *domain.Report
	numbers  []domain.DerivedNumber
	text     *domain.Interpretation
	err      error
	gotKind  domain.NumberKind
	gotOn    domain.Date
	gotInput domain.BirthProfile
}

func (m *mockNumerologyService) Report(
	_ context.Context, profile domain.BirthProfile, on domain.Date,
) (*domain.Report, error) {
	m.gotInput, m.gotOn = profile, on
	return m.report, m.err
}

func (m *mockNumerologyService) Calculate(
	kind domain.NumberKind, profile domain.BirthProfile, on domain.Date,
) ([]domain.DerivedNumber, error) {
	m.gotKind, m.gotInput, m.gotOn = kind, profile, on
	return m.numbers, m.err
}

func (m *mockNumerologyService) Interpret(_ context.Context, _ int) (*domain.Interpretation, error) {
	return m.text, m.err
}

// mockOracleService is a mock implementation of driving.OracleService.
type mockOracleService struct {
	reading  *domain.OracleReading
	err      error
	question string
}

func (m *mockOracleService) Roll(_ context.Context, question string) (*domain.OracleReading, error) {
	m.question = question
	return m.reading, m.err
}

func (m *mockOracleService) History(_ context.Context, _ int) ([]domain.OracleReading, error) {
	return nil, m.err
}

// mockBlogService is a mock implementation of driving.BlogService.
type mockBlogService struct {
	posts []domain.Post
	err   error
}

func (m *mockBlogService) List(_ context.Context, _ string) ([]domain.Post, error) {
	return m.posts, m.err
}

func (m *mockBlogService) Get(_ context.Context, slug string) (*domain.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.posts {
		if m.posts[i].Slug == slug {
			return &m.posts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBlogService) Render(_ context.Context, _ string, _ int) (string, error) {
	return "", m.err
}
