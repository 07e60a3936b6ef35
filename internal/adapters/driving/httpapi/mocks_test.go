package httpapi

import (
	"context"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

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

type mockBlogService struct {
	posts  []domain.Post
	err    error
	gotTag string
}

func (m *mockBlogService) List(_ context.Context, tag string) ([]domain.Post, error) {
	m.gotTag = tag
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

type mockChatService struct {
	available bool
	reply     *domain.ChatReply
	err       error
	got       domain.ChatRequest
}

func (m *mockChatService) Ask(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.got = req
	return m.reply, m.err
}

func (m *mockChatService) Available() bool {
	return m.available
}

type mockEmailService struct {
	err    error
	to     string
	report *domain.Report
}

func (m *mockEmailService) SendReport(_ context.Context, to string, report *domain.Report) error {
	m.to, m.report = to, report
	return m.err
}
