package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Ensure PostStore implements the interface.
var _ driven.PostStore = (*PostStore)(nil)

// PostStore is an in-memory implementation of driven.PostStore.
type PostStore struct {
	mu    sync.RWMutex
	posts map[string]domain.Post
}

// NewPostStore creates a post store holding posts.
func NewPostStore(posts ...domain.Post) *PostStore {
	s := &PostStore{posts: make(map[string]domain.Post, len(posts))}
	for _, p := range posts {
		s.posts[p.Slug] = p
	}
	return s
}

// Replace swaps the whole post set atomically.
func (s *PostStore) Replace(posts []domain.Post) {
	next := make(map[string]domain.Post, len(posts))
	for _, p := range posts {
		next[p.Slug] = p
	}
	s.mu.Lock()
	s.posts = next
	s.mu.Unlock()
}

// List returns every post.
func (s *PostStore) List(_ context.Context) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, p)
	}
	return result, nil
}

// Get retrieves a post by slug.
func (s *PostStore) Get(_ context.Context, slug string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}
