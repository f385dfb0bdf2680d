// Package reddit fetches posts and comments from the Reddit API.
//
// All requests go through a pacing limiter so listing pagination never
// exceeds one page per pacing interval, and 429 responses are absorbed
// internally with fixed backoff. Callers receive either results or a
// hard API failure, never a rate limit error.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/retry"
)

const (
	// defaultBaseURL is the authenticated Reddit API host.
	defaultBaseURL = "https://oauth.reddit.com"

	// pageSize is the listing page size. Reddit allows up to 100, but
	// smaller pages keep the early-stop watermark check cheap.
	pageSize = 25

	// paceInterval spaces listing page requests.
	paceInterval = 2 * time.Second

	// listingTimeout bounds a single listing page request.
	listingTimeout = 10 * time.Second

	// commentTimeout bounds a comment tree request, which Reddit serves
	// noticeably slower than listings.
	commentTimeout = 30 * time.Second

	// listingBackoff is the fixed pause before retrying a rate limited
	// listing page. Retries reuse the same cursor and are unbounded.
	listingBackoff = 5 * time.Second

	// commentBackoff is the fixed pause before retrying a rate limited
	// comment fetch.
	commentBackoff = 10 * time.Second

	// commentRetryAttempts bounds comment fetch attempts. Comments are
	// best-effort, so unlike listings they give up eventually.
	commentRetryAttempts = 3

	// maxCommentLimit caps how many comments one fetch returns.
	maxCommentLimit = 100
)

// Ensure Client implements the interface.
var _ driven.Scraper = (*Client)(nil)

// Client fetches content from the Reddit API.
type Client struct {
	broker  *TokenBroker
	http    *http.Client
	limiter *PacingLimiter
	baseURL string

	// backoffs are fields so tests can shrink them.
	listBackoff    time.Duration
	commentBackoff time.Duration
}

// NewClient creates a Reddit API client using the broker for auth.
func NewClient(broker *TokenBroker) *Client {
	return &Client{
		broker:         broker,
		http:           &http.Client{Transport: newUserAgentTransport(broker.creds.UserAgent, nil)},
		limiter:        NewPacingLimiter(paceInterval),
		baseURL:        defaultBaseURL,
		listBackoff:    listingBackoff,
		commentBackoff: commentBackoff,
	}
}

// Platform returns the platform key this scraper serves.
func (c *Client) Platform() string {
	return Platform
}

// FetchPosts returns up to opts.Limit items from a subreddit, newest
// first. Pagination stops at the cursor's end, the limit, or the first
// item at or before the opts.MinCreatedAt watermark. Keyword-filtered
// and stickied items are skipped without counting toward the limit.
func (c *Client) FetchPosts(ctx context.Context, channel string, opts domain.FetchOptions) ([]domain.RawContentItem, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = pageSize
	}
	sort := opts.Sort
	if sort == "" {
		sort = "new"
	}

	var items []domain.RawContentItem
	after := ""
	for {
		query := url.Values{
			"limit": {strconv.Itoa(pageSize)},
		}
		if after != "" {
			query.Set("after", after)
		}

		// A rate limited page is retried on the same cursor without
		// bound; any other failure aborts the fetch.
		var page listing
		policy := retry.Policy{MaxAttempts: 0, Delay: c.listBackoff, Retryable: IsRateLimited}
		err := retry.Do(ctx, policy, func(ctx context.Context) error {
			page = listing{}
			return c.getJSON(ctx, "/r/"+channel+"/"+sort, query, listingTimeout, c.listBackoff, &page)
		})
		if err != nil {
			return nil, fmt.Errorf("fetch r/%s: %w", channel, err)
		}

		done := false
		for _, child := range page.Data.Children {
			if child.Kind != "t3" {
				continue
			}
			data := child.Data

			// Stickied posts can be pinned out of chronological order,
			// so they are skipped before the watermark check.
			if opts.ExcludeStickied && data.Stickied {
				continue
			}

			item := data.toRawItem(channel)
			if !opts.MinCreatedAt.IsZero() && !item.CreatedAt.After(opts.MinCreatedAt) {
				done = true
				break
			}
			if !item.MatchesKeywords(opts.Keywords) {
				continue
			}

			items = append(items, item)
			if len(items) >= limit {
				done = true
				break
			}
		}

		after = page.Data.After
		if done || after == "" {
			break
		}
	}

	return items, nil
}

// getJSON performs one authenticated GET and decodes the response.
// 429 responses record a backoff window on the limiter and surface as
// *RateLimitError so callers can retry; other non-200 responses surface
// as *APIError.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, timeout, backoff time.Duration, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.broker.GetAccessToken(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := backoff
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		c.limiter.RecordRateLimitError(retryAfter)
		return &RateLimitError{RetryAfter: retryAfter}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
