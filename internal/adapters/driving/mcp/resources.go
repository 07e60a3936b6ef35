package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Numen resources.
	uriScheme = "numen://"

	mimeJSON     = "application/json"
	mimeMarkdown = "text/markdown"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "posts",
		Name:        "posts",
		Description: "Blog posts about numerology, newest first",
		MIMEType:    mimeJSON,
	}, s.handlePostsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "posts/{slug}",
		Name:        "post",
		Description: "Markdown content of a blog post",
		MIMEType:    mimeMarkdown,
	}, s.handlePostResource)
}

// postInfo is the listing shape of a post.
type postInfo struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`
	URI         string   `json:"uri"`
}

// handlePostsResource returns every post without its body.
func (s *Server) handlePostsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Blog == nil {
		return textResult(req.Params.URI, mimeJSON, "[]"), nil
	}

	posts, err := s.ports.Blog.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	infos := make([]postInfo, len(posts))
	for i := range posts {
		infos[i] = postInfo{
			Slug:    posts[i].Slug,
			Title:   posts[i].Title,
			Summary: posts[i].Summary,
			Tags:    posts[i].Tags,
			URI:     uriScheme + "posts/" + posts[i].Slug,
		}
		if !posts[i].PublishedAt.IsZero() {
			infos[i].PublishedAt = posts[i].PublishedAt.Format(time.DateOnly)
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling posts: %w", err)
	}
	return textResult(req.Params.URI, mimeJSON, string(data)), nil
}

// handlePostResource returns one post as Markdown.
func (s *Server) handlePostResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Blog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract slug from URI: numen://posts/{slug}
	slug := extractPostSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	post, err := s.ports.Blog.Get(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	text := fmt.Sprintf("# %s\n\n%s\n", post.Title, strings.TrimSpace(post.Body))
	return textResult(req.Params.URI, mimeMarkdown, text), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractPostSlug extracts the slug from a URI like numen://posts/{slug}.
func extractPostSlug(uri string) string {
	const prefix = uriScheme + "posts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	slug := strings.TrimPrefix(uri, prefix)
	if strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
