package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.PostStore = (*Store)(nil)

// Store serves built-in posts merged with posts from a directory.
type Store struct {
	posts   *memory.PostStore
	builtin []domain.Post
	dir     string
}

// NewStore loads built-in posts and, when dir is non-empty, the posts in dir.
// A missing directory is not an error; it is picked up by the next Reload.
func NewStore(dir string) (*Store, error) {
	builtin, err := BuiltinPosts()
	if err != nil {
		return nil, fmt.Errorf("load built-in posts: %w", err)
	}
	s := &Store{
		posts:   memory.NewPostStore(),
		builtin: builtin,
		dir:     dir,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the watched directory, or "" when only built-in posts are served.
func (s *Store) Dir() string {
	return s.dir
}

// Reload re-reads the directory and atomically replaces the served posts.
func (s *Store) Reload() error {
	merged := make(map[string]domain.Post, len(s.builtin))
	for _, p := range s.builtin {
		merged[p.Slug] = p
	}

	if s.dir != "" {
		posts, err := LoadDir(s.dir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn("blog directory %s does not exist, serving built-in posts", s.dir)
		case err != nil:
			return fmt.Errorf("load blog directory: %w", err)
		default:
			for _, p := range posts {
				merged[p.Slug] = p
			}
		}
	}

	all := make([]domain.Post, 0, len(merged))
	for _, p := range merged {
		all = append(all, p)
	}
	s.posts.Replace(all)
	logger.Debug("blog: %d posts loaded", len(all))
	return nil
}

// List returns every post.
func (s *Store) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// Get retrieves a post by slug.
func (s *Store) Get(ctx context.Context, slug string) (*domain.Post, error) {
	return s.posts.Get(ctx, slug)
}
