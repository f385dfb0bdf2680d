package driven

import (
	"context"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// Scraper fetches content from one upstream platform.
// Implementations own their pacing and rate limit handling: callers
// never see a rate limit error, only the final result or a hard failure.
type Scraper interface {
	// Platform returns the platform key this scraper serves (e.g., "reddit").
	Platform() string

	// FetchPosts returns up to opts.Limit items from a channel, newest
	// first, honouring the opts.MinCreatedAt watermark and keyword
	// filter. Items at or before the watermark are never returned.
	FetchPosts(ctx context.Context, channel string, opts domain.FetchOptions) ([]domain.RawContentItem, error)

	// FetchComments returns up to limit top-level comments for an
	// upstream item. Comment fetching is best-effort: transient
	// upstream failures yield an empty slice and no error.
	FetchComments(ctx context.Context, originalID string, limit int) ([]domain.RawComment, error)
}
