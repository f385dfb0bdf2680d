package driven

import (
	"context"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// CommentStore persists generated engagement comments.
type CommentStore interface {
	// Create stores a new comment.
	Create(ctx context.Context, comment *domain.Comment) error

	// CountByPost returns how many comments a post has.
	CountByPost(ctx context.Context, postID string) (int, error)
}
