// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
)

// Item is one row of a list: a title, an optional right-aligned meta column
// and an optional preview line.
type Item struct {
	Title   string
	Meta    string
	Preview string
}

// ItemList displays items in a navigable list.
type ItemList struct {
	heading  string
	empty    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates a list with a heading and a placeholder shown when empty.
func NewItemList(s *styles.Styles, heading, empty string) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if empty == "" {
		empty = "No items"
	}

	return &ItemList{
		heading: heading,
		empty:   empty,
		styles:  s,
		width:   80,
		height:  10,
	}
}

// Init initialises the list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	lines := make([]string, 0, len(l.items)+2)
	if l.heading != "" {
		lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.heading, len(l.items))), "")
	}

	// Each item takes up to two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *ItemList) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := item.Title
	if title == "" {
		title = "(untitled)"
	}

	maxTitleLen := l.width - len(item.Meta) - 6
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = truncate(title, maxTitleLen)

	var line string
	if index == l.selected {
		line = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, item.Meta))
	} else {
		line = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			l.styles.Muted.Render(item.Meta)
	}

	if item.Preview == "" {
		return line
	}

	maxPreviewLen := l.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	return line + "\n" + l.styles.Muted.Render("    "+truncate(item.Preview, maxPreviewLen))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SetItems replaces the items and resets the selection.
func (l *ItemList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *ItemList) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *ItemList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ItemList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *ItemList) IsEmpty() bool {
	return len(l.items) == 0
}
