package mcp

import (
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Numerology computes reports and interpretations.
	Numerology driving.NumerologyService

	// Oracle rolls the dice oracle.
	Oracle driving.OracleService

	// Blog serves posts as resources.
	Blog driving.BlogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Numerology == nil {
		return ErrMissingNumerologyService
	}
	// Oracle and Blog are optional
	return nil
}
