// Package mcp provides an MCP (Model Context Protocol) server adapter for Numen.
// It lets AI assistants compute numerology reports, roll the oracle and read
// blog posts through Numen's core services.
package mcp

import "errors"

// ErrMissingNumerologyService is returned when the numerology service is not provided.
var ErrMissingNumerologyService = errors.New("mcp: numerology service is required")
