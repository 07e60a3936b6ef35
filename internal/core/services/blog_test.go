package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

func testPosts() []domain.Post {
	return []domain.Post{
		{
			Slug:        "life-path-basics",
			Title:       "Life Path Basics",
			Author:      "Numen",
			PublishedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"Life Path", "beginners"},
			Body:        "Add up your birth date.",
		},
		{
			Slug:        "master-numbers",
			Title:       "Master Numbers",
			PublishedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"master"},
			Body:        "Eleven, twenty-two and thirty-three.",
		},
		{
			Slug:        "a-same-day",
			Title:       "Same Day",
			PublishedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"beginners"},
		},
	}
}

func TestBlogService_List_NewestFirst(t *testing.T) {
	service := NewBlogService(memory.NewPostStore(testPosts()...), nil)

	posts, err := service.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "a-same-day", posts[0].Slug)
	assert.Equal(t, "master-numbers", posts[1].Slug)
	assert.Equal(t, "life-path-basics", posts[2].Slug)
}

func TestBlogService_List_ByTag(t *testing.T) {
	service := NewBlogService(memory.NewPostStore(testPosts()...), nil)

	posts, err := service.List(context.Background(), "BEGINNERS")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a-same-day", posts[0].Slug)
	assert.Equal(t, "life-path-basics", posts[1].Slug)

	none, err := service.List(context.Background(), "astrology")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBlogService_Get(t *testing.T) {
	service := NewBlogService(memory.NewPostStore(testPosts()...), nil)

	post, err := service.Get(context.Background(), "master-numbers")
	require.NoError(t, err)
	assert.Equal(t, "Master Numbers", post.Title)

	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBlogService_Render_WithoutRenderer(t *testing.T) {
	service := NewBlogService(memory.NewPostStore(testPosts()...), nil)

	out, err := service.Render(context.Background(), "life-path-basics", 0)
	require.NoError(t, err)
	assert.Equal(t, "# Life Path Basics\n\n*by Numen, 1 March 2026*\n\nAdd up your birth date.\n", out)
}

func TestBlogService_Render_NoByline(t *testing.T) {
	post := domain.Post{Slug: "x", Title: "X", Body: "body"}
	service := NewBlogService(memory.NewPostStore(post), nil)

	out, err := service.Render(context.Background(), "x", 40)
	require.NoError(t, err)
	assert.Equal(t, "# X\n\nbody\n", out)
}

func TestBlogService_Render_WithRenderer(t *testing.T) {
	renderer := &upperRenderer{}
	service := NewBlogService(memory.NewPostStore(testPosts()...), renderer)

	out, err := service.Render(context.Background(), "master-numbers", 0)
	require.NoError(t, err)
	assert.Contains(t, out, "<rendered># Master Numbers")
	assert.Equal(t, defaultRenderWidth, renderer.width)

	_, err = service.Render(context.Background(), "master-numbers", 120)
	require.NoError(t, err)
	assert.Equal(t, 120, renderer.width)
}

func TestBlogService_Render_Errors(t *testing.T) {
	boom := errors.New("bad style")
	service := NewBlogService(memory.NewPostStore(testPosts()...), &upperRenderer{err: boom})

	_, err := service.Render(context.Background(), "master-numbers", 80)
	assert.ErrorIs(t, err, boom)

	_, err = service.Render(context.Background(), "missing", 80)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
