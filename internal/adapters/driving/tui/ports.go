// Package tui provides an interactive terminal user interface for numen.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// Only Numerology is required; views backed by a nil port show a
// "not available" message instead.
type Ports struct {
	// Numerology computes reports.
	Numerology driving.NumerologyService

	// Profile manages saved birth profiles.
	Profile driving.ProfileService

	// Oracle rolls the dice oracle.
	Oracle driving.OracleService

	// Blog serves blog posts.
	Blog driving.BlogService

	// Share renders and copies reports.
	Share driving.ShareService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the core services.
func NewPorts(
	numerology driving.NumerologyService,
	profile driving.ProfileService,
	oracle driving.OracleService,
	blog driving.BlogService,
) *Ports {
	return &Ports{
		Numerology: numerology,
		Profile:    profile,
		Oracle:     oracle,
		Blog:       blog,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Numerology == nil {
		return ErrMissingNumerologyService
	}
	return nil
}
