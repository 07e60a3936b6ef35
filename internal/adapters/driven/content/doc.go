// Package content provides the built-in numerology texts and the dice source.
//
// The interpretation catalog and oracle deck are TOML documents embedded in
// the binary. Both implement read-only driven ports and are safe for
// concurrent use once loaded.
package content
