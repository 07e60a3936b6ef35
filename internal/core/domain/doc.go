// Package domain defines the core business entities for Numen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BirthProfile: A validated name and birth date
//   - DerivedNumber: One numerology number tagged with its derivation
//   - Report: Every derived number for a profile plus interpretations
//   - OracleReading: A dice roll with its canned card text
//   - Post: A blog article
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
