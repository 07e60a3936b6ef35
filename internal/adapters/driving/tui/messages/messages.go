// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCalculator is the profile form and report view.
	ViewCalculator
	// ViewProfiles lists saved profiles.
	ViewProfiles
	// ViewOracle is the dice oracle.
	ViewOracle
	// ViewBlog lists blog posts.
	ViewBlog
	// ViewPost shows a single rendered post.
	ViewPost
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCalculator:
		return "calculator"
	case ViewProfiles:
		return "profiles"
	case ViewOracle:
		return "oracle"
	case ViewBlog:
		return "blog"
	case ViewPost:
		return "post"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ReportComputed carries a numerology report back to the calculator.
type ReportComputed struct {
	Report *domain.Report
	Err    error
}

// ProfilesLoaded carries the saved profiles.
type ProfilesLoaded struct {
	Profiles []domain.BirthProfile
	Err      error
}

// ProfileSaved signals a profile was saved.
type ProfileSaved struct {
	Profile *domain.BirthProfile
	Err     error
}

// ProfileRemoved signals a profile was removed.
type ProfileRemoved struct {
	ID  string
	Err error
}

// ProfileSelected opens the report for a saved profile.
type ProfileSelected struct {
	Profile domain.BirthProfile
}

// ReportCopied signals the report was copied to the clipboard.
type ReportCopied struct {
	Err error
}

// OracleRolled carries a new oracle reading.
type OracleRolled struct {
	Reading *domain.OracleReading
	Err     error
}

// HistoryLoaded carries recent oracle readings, newest first.
type HistoryLoaded struct {
	Readings []domain.OracleReading
	Err      error
}

// PostsLoaded carries the blog post list.
type PostsLoaded struct {
	Posts []domain.Post
	Err   error
}

// PostSelected opens a post.
type PostSelected struct {
	Post domain.Post
}

// PostRendered carries a post rendered for the terminal.
type PostRendered struct {
	Slug    string
	Content string
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
