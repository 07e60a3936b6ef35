// Package blog provides the blog post list view for the TUI.
package blog

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// View lists blog posts, newest first, optionally filtered by tag.
type View struct {
	styles      *styles.Styles
	blogService driving.BlogService
	ctx         context.Context

	list    *list.ItemList
	posts   []domain.Post
	tags    []string
	tagIdx  int // 0 means all tags
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new blog view.
func NewView(s *styles.Styles, blogService driving.BlogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		blogService: blogService,
		ctx:         context.Background(),
		list:        list.NewItemList(s, "Posts", "No posts yet."),
	}
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads every post and resets the tag filter.
func (v *View) Init() tea.Cmd {
	v.tagIdx = 0
	v.tags = nil
	v.loading = true
	return v.loadPosts("")
}

func (v *View) loadPosts(tag string) tea.Cmd {
	ctx, svc := v.ctx, v.blogService
	return func() tea.Msg {
		if svc == nil {
			return messages.PostsLoaded{Err: fmt.Errorf("blog service not available")}
		}
		posts, err := svc.List(ctx, tag)
		return messages.PostsLoaded{Posts: posts, Err: err}
	}
}

// Update handles messages for the blog view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PostsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.setPosts(msg.Posts)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "enter":
		i := v.list.Selected()
		if i >= 0 && i < len(v.posts) {
			post := v.posts[i]
			return v, func() tea.Msg {
				return messages.PostSelected{Post: post}
			}
		}
	case "t":
		// Cycle through the tags seen on the unfiltered list.
		if len(v.tags) == 0 {
			return v, nil
		}
		v.tagIdx = (v.tagIdx + 1) % (len(v.tags) + 1)
		v.loading = true
		return v, v.loadPosts(v.Tag())
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) setPosts(posts []domain.Post) {
	v.posts = posts
	if v.tagIdx == 0 {
		v.tags = collectTags(posts)
	}

	items := make([]list.Item, len(posts))
	for i := range posts {
		p := &posts[i]
		items[i] = list.Item{
			Title:   p.Title,
			Meta:    p.PublishedAt.Format("2006-01-02"),
			Preview: p.Summary,
		}
	}
	v.list.SetItems(items)
}

// collectTags returns the distinct tags of posts in first-seen order.
func collectTags(posts []domain.Post) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if !seen[key] {
				seen[key] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// Tag returns the active tag filter, or "" for all posts.
func (v *View) Tag() string {
	if v.tagIdx == 0 || v.tagIdx > len(v.tags) {
		return ""
	}
	return v.tags[v.tagIdx-1]
}

// View renders the blog list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Blog"))
	if tag := v.Tag(); tag != "" {
		b.WriteString(v.styles.Muted.Render("  #" + tag))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading posts..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] read  [t] next tag  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-4)
}

// Posts returns the loaded posts.
func (v *View) Posts() []domain.Post {
	return v.posts
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
