package reddit

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/logger"
	"github.com/MdHasib01/commserver/internal/retry"
)

// FetchComments returns up to limit top-level comments for a post.
// Deleted, removed and empty comments are filtered out. Fetching is
// best-effort: after bounded rate limit retries, any remaining failure
// is logged and an empty result returned so ingestion can continue.
func (c *Client) FetchComments(ctx context.Context, originalID string, limit int) ([]domain.RawComment, error) {
	if limit <= 0 || limit > maxCommentLimit {
		limit = maxCommentLimit
	}

	query := url.Values{
		"limit": {strconv.Itoa(limit)},
		"depth": {"1"},
		"sort":  {"top"},
	}

	var payload []listing
	policy := retry.Policy{MaxAttempts: commentRetryAttempts, Delay: c.commentBackoff, Retryable: IsRateLimited}
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		payload = nil
		return c.getJSON(ctx, "/comments/"+originalID, query, commentTimeout, c.commentBackoff, &payload)
	})
	if err != nil {
		// Shutdown is not an upstream failure; let it propagate.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("reddit: comment fetch for %s failed: %v", originalID, err)
		return nil, nil
	}

	// The comments endpoint returns two listings: the post itself, then
	// its comment tree.
	if len(payload) < 2 {
		return nil, nil
	}

	var comments []domain.RawComment
	for _, child := range payload[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		if isDeletedComment(child.Data) {
			continue
		}
		comments = append(comments, child.Data.toRawComment())
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}

// isDeletedComment reports whether a comment carries no usable text.
func isDeletedComment(d thingData) bool {
	body := strings.TrimSpace(d.Body)
	return body == "" || body == "[deleted]" || body == "[removed]" || d.Author == "[deleted]"
}
