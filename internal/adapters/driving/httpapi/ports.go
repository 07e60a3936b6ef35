package httpapi

import (
	"errors"

	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// ErrMissingNumerologyService is returned when the required numerology port is nil.
var ErrMissingNumerologyService = errors.New("httpapi: numerology service is required")

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Numerology computes reports. Required.
	Numerology driving.NumerologyService

	// Oracle rolls the dice oracle.
	Oracle driving.OracleService

	// Blog serves posts.
	Blog driving.BlogService

	// Chat proxies conversations to the LLM.
	Chat driving.ChatService

	// Email sends reports.
	Email driving.EmailService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Numerology == nil {
		return ErrMissingNumerologyService
	}
	return nil
}
