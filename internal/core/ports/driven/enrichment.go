package driven

import (
	"context"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// CommentEnricher generates engagement comments for a freshly published
// post. Failures are logged by the orchestrator and never roll back the
// post.
type CommentEnricher interface {
	// GenerateComments creates and persists count comments for the
	// record, attributed to the given platform users.
	GenerateComments(ctx context.Context, record *domain.ContentRecord, users []domain.PlatformUser, count int) error
}

// LikeSeeder materialises a post's initial like count as individual
// platform user likes.
type LikeSeeder interface {
	// SeedLikes attaches likes from count distinct platform users to
	// the record.
	SeedLikes(ctx context.Context, record *domain.ContentRecord, users []domain.PlatformUser, count int) error
}
