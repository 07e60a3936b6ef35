package blog

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/services"
)

func testPosts() []domain.Post {
	return []domain.Post{
		{
			Slug:        "master-numbers",
			Title:       "Master Numbers",
			PublishedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"basics"},
			Summary:     "Why 11, 22 and 33 stay whole.",
			Body:        "Master numbers are not reduced.",
		},
		{
			Slug:        "personal-year",
			Title:       "Your Personal Year",
			PublishedAt: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"cycles", "Basics"},
			Body:        "Each year has a theme.",
		},
	}
}

func newTestView(t *testing.T) *View {
	t.Helper()
	svc := services.NewBlogService(memory.NewPostStore(testPosts()...), nil)
	v := NewView(nil, svc)
	v.SetDimensions(80, 24)
	return v
}

func apply(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Empty(t, v.Posts())
	assert.Equal(t, "", v.Tag())
}

func TestView_Init_LoadsNewestFirst(t *testing.T) {
	v := newTestView(t)

	apply(t, v, v.Init())

	require.Len(t, v.Posts(), 2)
	assert.Equal(t, "personal-year", v.Posts()[0].Slug)

	view := v.View()
	assert.Contains(t, view, "Posts (2)")
	assert.Contains(t, view, "2026-03-04")
	assert.Contains(t, view, "Why 11, 22 and 33")
}

func TestView_LoadingAndError(t *testing.T) {
	v := NewView(nil, nil)

	cmd := v.Init()
	assert.Contains(t, v.View(), "Loading posts")

	apply(t, v, cmd)
	assert.ErrorContains(t, v.Err(), "blog service not available")
	assert.Contains(t, v.View(), "Error:")
}

func TestView_TagCycle(t *testing.T) {
	v := newTestView(t)
	apply(t, v, v.Init())
	require.Equal(t, []string{"cycles", "Basics"}, v.tags)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	apply(t, v, cmd)
	assert.Equal(t, "cycles", v.Tag())
	require.Len(t, v.Posts(), 1)
	assert.Contains(t, v.View(), "#cycles")

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	apply(t, v, cmd)
	assert.Equal(t, "Basics", v.Tag())
	assert.Len(t, v.Posts(), 2, "tags match ignoring case")

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	apply(t, v, cmd)
	assert.Equal(t, "", v.Tag())
	assert.Len(t, v.Posts(), 2)
}

func TestView_TagCycleWithoutTags(t *testing.T) {
	v := NewView(nil, services.NewBlogService(memory.NewPostStore(), nil))
	apply(t, v, v.Init())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "No posts yet")
}

func TestView_Enter_SelectsPost(t *testing.T) {
	v := newTestView(t)
	apply(t, v, v.Init())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.PostSelected)
	require.True(t, ok)
	assert.Equal(t, "master-numbers", selected.Post.Slug)
}

func TestView_Esc(t *testing.T) {
	v := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestCollectTags(t *testing.T) {
	assert.Equal(t, []string{"basics", "cycles"}, collectTags(testPosts()))
	assert.Nil(t, collectTags(nil))
}
