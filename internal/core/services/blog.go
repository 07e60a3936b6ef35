package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
)

// defaultRenderWidth is used when the caller passes no terminal width.
const defaultRenderWidth = 80

// Ensure BlogService implements the interface.
var _ driving.BlogService = (*BlogService)(nil)

// BlogService serves blog posts.
type BlogService struct {
	posts    driven.PostStore
	renderer driven.MarkdownRenderer
}

// NewBlogService creates a new blog service.
// The renderer is optional; without it Render returns plain Markdown.
func NewBlogService(posts driven.PostStore, renderer driven.MarkdownRenderer) *BlogService {
	return &BlogService{
		posts:    posts,
		renderer: renderer,
	}
}

// List returns posts newest first, filtered by tag when tag is non-empty.
func (s *BlogService) List(ctx context.Context, tag string) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	tag = strings.TrimSpace(tag)
	result := make([]domain.Post, 0, len(posts))
	for i := range posts {
		if tag != "" && !posts[i].HasTag(tag) {
			continue
		}
		result = append(result, posts[i])
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].PublishedAt.Equal(result[j].PublishedAt) {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		}
		return result[i].Slug < result[j].Slug
	})
	return result, nil
}

// Get retrieves a post by slug.
func (s *BlogService) Get(ctx context.Context, slug string) (*domain.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.NewFieldError("slug", "is required")
	}
	post, err := s.posts.Get(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", slug, err)
	}
	return post, nil
}

// Render returns the post formatted for a terminal of the given width.
func (s *BlogService) Render(ctx context.Context, slug string, width int) (string, error) {
	post, err := s.Get(ctx, slug)
	if err != nil {
		return "", err
	}
	if width <= 0 {
		width = defaultRenderWidth
	}

	md := postMarkdown(post)
	if s.renderer == nil {
		return md, nil
	}
	out, err := s.renderer.Render(md, width)
	if err != nil {
		return "", fmt.Errorf("render post %s: %w", slug, err)
	}
	return out, nil
}

// postMarkdown prefixes the body with a title and byline.
func postMarkdown(p *domain.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	var byline []string
	if p.Author != "" {
		byline = append(byline, "by "+p.Author)
	}
	if !p.PublishedAt.IsZero() {
		byline = append(byline, p.PublishedAt.Format("2 January 2006"))
	}
	if len(byline) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(byline, ", "))
	}

	b.WriteString(strings.TrimSpace(p.Body))
	b.WriteString("\n")
	return b.String()
}
