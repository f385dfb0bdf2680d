package domain

import (
	"strings"
	"time"
)

// RawContentItem represents one item fetched from an upstream platform,
// normalized to platform-neutral fields. It is the scraper's output
// before transformation and scoring.
type RawContentItem struct {
	// Platform identifies the upstream platform (e.g., "reddit").
	Platform string

	// OriginalID is the upstream platform's identifier for the item.
	OriginalID string

	// Channel is the upstream channel the item was fetched from.
	Channel string

	// Title is the item's title as published upstream.
	Title string

	// Body is the item's self-text. May be empty for link posts.
	Body string

	// URL is the canonical upstream URL for the item.
	URL string

	// Author is the upstream author's handle.
	Author string

	// CreatedAt is when the item was created upstream.
	CreatedAt time.Time

	// Score is the upstream net vote score.
	Score int

	// Ups is the upstream upvote count.
	Ups int

	// UpvoteRatio is the upstream fraction of votes that are upvotes.
	UpvoteRatio float64

	// NumComments is the upstream comment count.
	NumComments int

	// Stickied marks pinned/announcement items.
	Stickied bool

	// Flair is the upstream flair/category label, if any.
	Flair string

	// Thumbnail is the upstream preview thumbnail URL, if usable.
	Thumbnail string

	// MediaURL is the direct media URL for image/video posts.
	MediaURL string

	// GalleryURLs lists image URLs for gallery posts, in order.
	GalleryURLs []string

	// IsVideo marks items whose media is a video.
	IsVideo bool
}

// RawComment represents one upstream comment on a fetched item.
type RawComment struct {
	// OriginalID is the upstream identifier for the comment.
	OriginalID string

	// Author is the upstream author's handle.
	Author string

	// Body is the comment text.
	Body string

	// Score is the upstream net vote score.
	Score int

	// CreatedAt is when the comment was created upstream.
	CreatedAt time.Time
}

// FetchOptions controls a scraper listing fetch.
type FetchOptions struct {
	// Limit is the maximum number of matching items to return.
	Limit int

	// MinCreatedAt is the incremental watermark. Items created at or
	// before this instant are excluded and stop pagination.
	MinCreatedAt time.Time

	// Keywords optionally restricts results to items whose title or
	// body contains at least one keyword (case-insensitive). Items
	// filtered out do not count toward Limit.
	Keywords []string

	// Sort is the platform listing sort order (e.g., "new").
	Sort string

	// ExcludeStickied drops pinned/announcement items.
	ExcludeStickied bool
}

// MatchesKeywords reports whether the item passes the keyword filter.
// An empty filter matches everything.
func (r *RawContentItem) MatchesKeywords(keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	title := strings.ToLower(r.Title)
	body := strings.ToLower(r.Body)
	usable := false
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		usable = true
		if strings.Contains(title, k) || strings.Contains(body, k) {
			return true
		}
	}
	// A filter of only blank keywords is treated as no filter.
	return !usable
}
