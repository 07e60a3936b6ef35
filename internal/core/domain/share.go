package domain

import "time"

// ShareFormat selects how a report is rendered for sharing.
type ShareFormat string

// Available share formats.
const (
	ShareFormatText     ShareFormat = "text"
	ShareFormatMarkdown ShareFormat = "markdown"
	ShareFormatJSON     ShareFormat = "json"
)

// IsValid returns true if the format is recognised.
func (f ShareFormat) IsValid() bool {
	switch f {
	case ShareFormatText, ShareFormatMarkdown, ShareFormatJSON:
		return true
	default:
		return false
	}
}

// Extension returns the file extension for the format, including the dot.
func (f ShareFormat) Extension() string {
	switch f {
	case ShareFormatMarkdown:
		return ".md"
	case ShareFormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ContentType returns the MIME type for the format.
func (f ShareFormat) ContentType() string {
	switch f {
	case ShareFormatMarkdown:
		return "text/markdown; charset=utf-8"
	case ShareFormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ShareLink is an uploaded report and its time-limited URL.
type ShareLink struct {
	// Key is the object key in the store.
	Key string `json:"key"`

	// URL is the presigned download link.
	URL string `json:"url"`

	// ExpiresAt is when URL stops working.
	ExpiresAt time.Time `json:"expires_at"`
}
