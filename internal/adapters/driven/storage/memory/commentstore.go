package memory

import (
	"context"
	"sync"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure CommentStore implements the interface.
var _ driven.CommentStore = (*CommentStore)(nil)

// CommentStore is an in-memory implementation of driven.CommentStore.
type CommentStore struct {
	mu       sync.RWMutex
	comments map[string]domain.Comment
}

// NewCommentStore creates a new in-memory comment store.
func NewCommentStore() *CommentStore {
	return &CommentStore{
		comments: make(map[string]domain.Comment),
	}
}

// Create stores a new comment.
func (s *CommentStore) Create(_ context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.comments[comment.ID] = *comment
	return nil
}

// CountByPost returns how many comments a post has.
func (s *CommentStore) CountByPost(_ context.Context, postID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, comment := range s.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}
