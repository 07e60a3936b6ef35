// Package profiles provides the saved profiles view for the TUI.
package profiles

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

// View lists saved profiles. Selecting one opens its report.
type View struct {
	styles         *styles.Styles
	profileService driving.ProfileService
	ctx            context.Context

	list     *list.ItemList
	profiles []domain.BirthProfile
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new profiles view.
func NewView(s *styles.Styles, profileService driving.ProfileService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:         s,
		profileService: profileService,
		ctx:            context.Background(),
		list:           list.NewItemList(s, "Saved profiles", "No saved profiles. Save one from the calculator with [s]."),
	}
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the profiles.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadProfiles()
}

func (v *View) loadProfiles() tea.Cmd {
	ctx, svc := v.ctx, v.profileService
	return func() tea.Msg {
		if svc == nil {
			return messages.ProfilesLoaded{Err: fmt.Errorf("profile service not available")}
		}
		profiles, err := svc.List(ctx)
		return messages.ProfilesLoaded{Profiles: profiles, Err: err}
	}
}

// Update handles messages for the profiles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProfilesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.setProfiles(msg.Profiles)
		return v, nil

	case messages.ProfileRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadProfiles()
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
		if p, ok := v.selectedProfile(); ok {
			return v, func() tea.Msg {
				return messages.ProfileSelected{Profile: p}
			}
		}
	case "d", "delete":
		if p, ok := v.selectedProfile(); ok {
			return v, v.removeProfile(p.ID)
		}
	case "r":
		v.loading = true
		return v, v.loadProfiles()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) removeProfile(id string) tea.Cmd {
	ctx, svc := v.ctx, v.profileService
	return func() tea.Msg {
		if svc == nil {
			return messages.ProfileRemoved{ID: id, Err: fmt.Errorf("profile service not available")}
		}
		return messages.ProfileRemoved{ID: id, Err: svc.Remove(ctx, id)}
	}
}

func (v *View) setProfiles(profiles []domain.BirthProfile) {
	v.profiles = profiles
	items := make([]list.Item, len(profiles))
	for i, p := range profiles {
		preview := p.CurrentName
		if len(p.Nicknames) > 0 {
			if preview != "" {
				preview += ", "
			}
			preview += "aka " + strings.Join(p.Nicknames, ", ")
		}
		items[i] = list.Item{Title: p.FullName, Meta: p.BirthDate.String(), Preview: preview}
	}
	v.list.SetItems(items)
}

func (v *View) selectedProfile() (domain.BirthProfile, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.profiles) {
		return domain.BirthProfile{}, false
	}
	return v.profiles[i], true
}

// View renders the profiles view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Profiles"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading profiles..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] report  [d] remove  [r] refresh  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-4)
}

// Profiles returns the loaded profiles.
func (v *View) Profiles() []domain.BirthProfile {
	return v.profiles
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
