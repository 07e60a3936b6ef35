package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/blog"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/calculator"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/oracle"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/post"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/profiles"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// calculatorView computes and displays reports.
	calculatorView *calculator.View

	// profilesView lists saved birth profiles.
	profilesView *profiles.View

	// oracleView rolls the dice oracle.
	oracleView *oracle.View

	// blogView lists blog posts.
	blogView *blog.View

	// postView reads a single post.
	postView *post.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menu.NewView(s),
		calculatorView: calculator.NewView(s, ports.Numerology, ports.Profile, ports.Share),
		profilesView:   profiles.NewView(s, ports.Profile),
		oracleView:     oracle.NewView(s, ports.Oracle),
		blogView:       blog.NewView(s, ports.Blog),
		postView:       post.NewView(s, ports.Blog),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.calculatorView.WithContext(ctx)
	a.profilesView.WithContext(ctx)
	a.oracleView.WithContext(ctx)
	a.blogView.WithContext(ctx)
	a.postView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("numen"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.calculatorView.SetDimensions(msg.Width, msg.Height)
		a.profilesView.SetDimensions(msg.Width, msg.Height)
		a.oracleView.SetDimensions(msg.Width, msg.Height)
		a.blogView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		// The post view re-renders markdown for the new width.
		a.postView, cmd = a.postView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "?" && a.currentView == messages.ViewMenu {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		return a, a.updateActive(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewCalculator:
			a.calculatorView.Reset()
			return a, a.calculatorView.Init()
		case messages.ViewProfiles:
			return a, a.profilesView.Init()
		case messages.ViewOracle:
			a.oracleView.Reset()
			return a, a.oracleView.Init()
		case messages.ViewBlog:
			return a, a.blogView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewPost, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.ProfileSelected:
		// Open the selected profile's report in the calculator.
		a.currentView = messages.ViewCalculator
		return a, a.calculatorView.SetProfile(msg.Profile)

	case messages.PostSelected:
		a.currentView = messages.ViewPost
		return a, a.postView.SetPost(msg.Post)

	case messages.ReportComputed, messages.ProfileSaved, messages.ReportCopied:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
		return a, cmd

	case messages.ProfilesLoaded, messages.ProfileRemoved:
		a.profilesView, cmd = a.profilesView.Update(msg)
		return a, cmd

	case messages.OracleRolled, messages.HistoryLoaded:
		a.oracleView, cmd = a.oracleView.Update(msg)
		return a, cmd

	case messages.PostsLoaded:
		a.blogView, cmd = a.blogView.Update(msg)
		return a, cmd

	case messages.PostRendered:
		a.postView, cmd = a.postView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks) to the active view.
	return a, a.updateActive(msg)
}

// updateActive forwards msg to the view currently on screen.
func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCalculator:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
	case messages.ViewProfiles:
		a.profilesView, cmd = a.profilesView.Update(msg)
	case messages.ViewOracle:
		a.oracleView, cmd = a.oracleView.Update(msg)
	case messages.ViewBlog:
		a.blogView, cmd = a.blogView.Update(msg)
	case messages.ViewPost:
		a.postView, cmd = a.postView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Esc from help goes to menu
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewCalculator:
		return a.calculatorView.View()
	case messages.ViewProfiles:
		return a.profilesView.View()
	case messages.ViewOracle:
		return a.oracleView.View()
	case messages.ViewBlog:
		return a.blogView.View()
	case messages.ViewPost:
		return a.postView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  1-7         Jump to option
  enter       Select option
  q           Quit

Calculator:
  tab         Next field
  enter       Compute report
  s           Save profile
  c           Copy report
  n           New calculation

Profiles:
  enter       Open report
  d           Remove profile

Oracle:
  (type)      Ask a question
  enter       Roll the dice

Blog:
  t           Filter by tag
  enter       Read post

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
