// Package memory provides in-memory implementations of the driven storage
// ports. They back tests and hold the blog post set loaded from disk.
package memory
