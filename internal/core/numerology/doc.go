// Package numerology implements the Pythagorean numerology engine.
//
// Every function in this package is a pure, total transform over small
// integers and short strings. There is no I/O, no randomness and no shared
// mutable state, so all functions are safe for concurrent use.
//
// # Reduction Policy
//
// A number is reduced by repeatedly summing its decimal digits until a single
// digit remains. The master numbers 11, 22 and 33 are the one exception and
// are returned unreduced, but only at the final step of a derivation.
// Intermediate values (the month, day and year of a date, or the partial
// sums that feed a challenge) are always reduced to a plain single digit.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
//
// Input validation happens at the boundary (see domain.NewBirthProfile). The
// engine assumes a validated name and calendar date and never returns an error.
package numerology
