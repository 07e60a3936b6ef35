package tui

import "errors"

// ErrMissingNumerologyService is returned when the numerology service is not provided.
var ErrMissingNumerologyService = errors.New("tui: numerology service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
