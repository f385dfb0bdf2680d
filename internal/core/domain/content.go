package domain

import "time"

// ContentStatus is the moderation/visibility state of a content record.
type ContentStatus string

// Content statuses.
const (
	// StatusActive is visible, published content.
	StatusActive ContentStatus = "active"

	// StatusHidden is content removed from feeds but retained.
	StatusHidden ContentStatus = "hidden"

	// StatusFlagged is content awaiting moderator review.
	StatusFlagged ContentStatus = "flagged"

	// StatusDeleted is content soft-deleted by its owner.
	StatusDeleted ContentStatus = "deleted"
)

// IsValid returns true if the status is recognised.
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusHidden, StatusFlagged, StatusDeleted:
		return true
	default:
		return false
	}
}

// MediaType classifies an attached media item.
type MediaType string

// Media types.
const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaLink  MediaType = "link"
)

// ContentType classifies a post by its dominant media kind.
type ContentType string

// Content types.
const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentLink  ContentType = "link"
)

// ValidationHeuristic marks records validated by the built-in
// heuristic authenticity checks.
const ValidationHeuristic = "heuristic"

// Engagement is the upstream engagement snapshot captured at ingestion
// time. It records how the item performed on its source platform and is
// kept separate from locally seeded likes and generated comments.
type Engagement struct {
	// Score is the upstream net score (ups minus downs).
	Score int

	// Ups is the upstream upvote count.
	Ups int

	// UpvoteRatio is the upstream upvote ratio in [0, 1].
	UpvoteRatio float64

	// Comments is the upstream comment count.
	Comments int
}

// Media is a single media attachment extracted from an upstream item.
type Media struct {
	// Type classifies the attachment.
	Type MediaType

	// URL is the direct media URL with HTML entities unescaped.
	URL string

	// ThumbnailURL is the preview image URL, if any.
	ThumbnailURL string
}

// ContentRecord is a published platform post created from an upstream
// item. It is the unit of persistence for the ingestion pipeline.
type ContentRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// CommunityID links to the Community the post was published into.
	CommunityID string

	// OwnerID is the synthetic platform user the post is attributed to.
	OwnerID string

	// Title is the transformed post title.
	Title string

	// Body is the transformed post body. Never empty: a body is
	// synthesized when the upstream item has none.
	Body string

	// Media lists extracted media attachments.
	Media []Media

	// Thumbnail is the preview image URL chosen for feeds.
	Thumbnail string

	// Tags is the lowercased topic tag set (channel, flair, hashtags).
	Tags []string

	// ContentType classifies the post by its dominant media kind.
	ContentType ContentType

	// Platform identifies the upstream platform the item came from.
	Platform string

	// OriginalID is the upstream platform's identifier for the item.
	// (Platform, OriginalID) is unique across all records.
	OriginalID string

	// SourceURL is the canonical upstream URL. Unique across all records.
	SourceURL string

	// OriginalAuthor is the upstream author's handle, kept for
	// attribution and audit.
	OriginalAuthor string

	// OriginalCreatedAt is when the item was created upstream.
	OriginalCreatedAt time.Time

	// Engagement is the upstream engagement snapshot.
	Engagement Engagement

	// QualityScore is the deterministic quality score in [0, 1]
	// computed at ingestion time.
	QualityScore float64

	// AuthenticityScore is the heuristic authenticity score in [0, 1].
	AuthenticityScore float64

	// IsAuthentic reports whether the record passed the authenticity
	// checks.
	IsAuthentic bool

	// ValidationMethod names the validation that produced the
	// authenticity verdict.
	ValidationMethod string

	// LikedBy lists platform user IDs whose likes were seeded onto the
	// post at publication.
	LikedBy []string

	// CommentCount is the number of comments attached to the post.
	CommentCount int

	// Status is the moderation/visibility state.
	Status ContentStatus

	// CreatedAt is when the record was persisted.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// Comment is an engagement comment attached to a content record.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID string

	// PostID links to the ContentRecord the comment belongs to.
	PostID string

	// AuthorID is the platform user the comment is attributed to.
	AuthorID string

	// Body is the comment text.
	Body string

	// CreatedAt is when the comment was persisted.
	CreatedAt time.Time
}
