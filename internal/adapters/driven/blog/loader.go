package blog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

//go:embed posts/*.md
var builtinFS embed.FS

const (
	postExt       = ".md"
	frontMatterID = "---"
)

var (
	// ErrNoFrontMatter is returned when a file does not open with a --- block.
	ErrNoFrontMatter = errors.New("missing front matter")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// BuiltinPosts returns the posts embedded in the binary.
func BuiltinPosts() ([]domain.Post, error) {
	return LoadFS(builtinFS, "posts")
}

// LoadDir loads every .md file directly inside dir.
func LoadDir(dir string) ([]domain.Post, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS loads every .md file directly inside root of fsys.
// Files that fail to parse are logged and skipped.
func LoadFS(fsys fs.FS, root string) ([]domain.Post, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), postExt) {
			continue
		}
		name := path.Join(root, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read post %s: %w", name, err)
		}
		post, err := ParsePost(entry.Name(), data)
		if err != nil {
			logger.Warn("skipping post %s: %v", name, err)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// ParsePost parses a Markdown file with YAML front matter.
func ParsePost(filename string, data []byte) (domain.Post, error) {
	front, body, err := splitFrontMatter(data)
	if err != nil {
		return domain.Post{}, err
	}

	var post domain.Post
	if err := yaml.Unmarshal(front, &post); err != nil {
		return domain.Post{}, fmt.Errorf("parse front matter: %w", err)
	}

	if post.Slug == "" {
		post.Slug = strings.TrimSuffix(path.Base(filename), postExt)
	}
	if !slugPattern.MatchString(post.Slug) {
		return domain.Post{}, domain.NewFieldError("slug", "%q must be lowercase words joined by hyphens", post.Slug)
	}
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return domain.Post{}, domain.NewFieldError("title", "is required")
	}
	post.Body = strings.TrimSpace(string(body))
	return post, nil
}

// splitFrontMatter separates the leading --- block from the body.
func splitFrontMatter(data []byte) (front, body []byte, err error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	first, rest, ok := bytes.Cut(data, []byte("\n"))
	if !ok || strings.TrimSpace(string(first)) != frontMatterID {
		return nil, nil, ErrNoFrontMatter
	}

	lines := bytes.SplitAfter(rest, []byte("\n"))
	offset := 0
	for _, line := range lines {
		if strings.TrimSpace(string(line)) == frontMatterID {
			return rest[:offset], rest[offset+len(line):], nil
		}
		offset += len(line)
	}
	return nil, nil, fmt.Errorf("%w: no closing %s", ErrNoFrontMatter, frontMatterID)
}
