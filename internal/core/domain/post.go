package domain

import (
	"strings"
	"time"
)

// Post is a blog article.
type Post struct {
	// Slug is the URL-safe unique identifier.
	Slug string `json:"slug" yaml:"slug"`

	// Title is the headline.
	Title string `json:"title" yaml:"title"`

	// Author is the byline.
	Author string `json:"author,omitempty" yaml:"author"`

	// PublishedAt is the publication date.
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`

	// Tags are free-form topic labels.
	Tags []string `json:"tags,omitempty" yaml:"tags"`

	// Summary is a one-paragraph teaser.
	Summary string `json:"summary,omitempty" yaml:"summary"`

	// Body is the Markdown content.
	Body string `json:"body,omitempty" yaml:"-"`
}

// HasTag reports whether the post carries tag, ignoring case.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
