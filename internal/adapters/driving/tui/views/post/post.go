// Package post provides the blog post reader view for the TUI.
package post

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// View shows one post rendered for the terminal.
type View struct {
	styles      *styles.Styles
	blogService driving.BlogService
	ctx         context.Context

	post         *domain.Post
	content      string
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new post view.
func NewView(s *styles.Styles, blogService driving.BlogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		blogService: blogService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetPost sets the post and renders it.
func (v *View) SetPost(p domain.Post) tea.Cmd {
	v.post = &p
	v.content = ""
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.render()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) render() tea.Cmd {
	if v.post == nil {
		return nil
	}
	ctx, svc, slug, width := v.ctx, v.blogService, v.post.Slug, v.contentWidth()
	return func() tea.Msg {
		if svc == nil {
			return messages.PostRendered{Slug: slug, Err: fmt.Errorf("blog service not available")}
		}
		content, err := svc.Render(ctx, slug, width)
		return messages.PostRendered{Slug: slug, Content: content, Err: err}
	}
}

// Update handles messages for the post view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		resized := msg.Width != v.width
		v.SetDimensions(msg.Width, msg.Height)
		if resized && v.post != nil {
			// Glamour wraps at render time, so a new width needs a new render.
			return v, v.render()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PostRendered:
		if v.post == nil || msg.Slug != v.post.Slug {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.content = msg.Content
		v.lines = strings.Split(strings.TrimRight(msg.Content, "\n"), "\n")
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d", " ":
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBlog}
		}
	}
	return v, nil
}

func (v *View) contentWidth() int {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (v *View) visibleLines() int {
	// Title, byline, separator and help.
	available := v.height - 7
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the post.
func (v *View) View() string {
	var b strings.Builder

	title := "Post"
	if v.post != nil {
		title = v.post.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.post != nil {
		byline := v.post.PublishedAt.Format("2 January 2006")
		if v.post.Author != "" {
			byline = v.post.Author + ", " + byline
		}
		b.WriteString(v.styles.Muted.Render(byline))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Rendering post..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n")
	default:
		visible := v.visibleLines()
		end := min(v.scrollOffset+visible, len(v.lines))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.lines[i])
			b.WriteString("\n")
		}
		if len(v.lines) > visible {
			percentage := 0
			if v.maxScrollOffset() > 0 {
				percentage = v.scrollOffset * 100 / v.maxScrollOffset()
			}
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
				percentage, v.scrollOffset+1, end, len(v.lines))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Post returns the current post.
func (v *View) Post() *domain.Post {
	return v.post
}

// Content returns the rendered content.
func (v *View) Content() string {
	return v.content
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
