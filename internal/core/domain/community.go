package domain

import "time"

// SourceConfig describes one upstream channel feeding a community.
// A community may aggregate several configs across platforms.
type SourceConfig struct {
	// Platform identifies the upstream platform (e.g., "reddit").
	Platform string

	// Channel is the platform-specific channel name (e.g., a subreddit).
	Channel string

	// Keywords optionally restricts ingestion to items whose title or
	// body contains at least one keyword (case-insensitive).
	Keywords []string

	// Sort is the platform listing sort order (e.g., "new", "hot").
	Sort string

	// ExcludeStickied drops pinned/announcement items when true.
	ExcludeStickied bool

	// Active indicates whether this config participates in sweeps.
	Active bool
}

// ScrapingConfig holds per-community ingestion tuning.
type ScrapingConfig struct {
	// MaxPostsPerScrape caps how many items a bulk sweep ingests for
	// the community. Zero means use the engine default.
	MaxPostsPerScrape int

	// QualityThreshold overrides the engine's minimum quality score.
	// Zero means use the engine default.
	QualityThreshold float64
}

// Community represents a platform community that ingested content is
// published into.
type Community struct {
	// ID is the unique identifier for the community.
	ID string

	// Name is the human-readable community name.
	Name string

	// Description is an optional blurb shown on the community page.
	Description string

	// Active indicates whether the community participates in sweeps.
	Active bool

	// SourceConfigs lists the upstream channels feeding this community.
	SourceConfigs []SourceConfig

	// Scraping holds per-community ingestion tuning.
	Scraping ScrapingConfig

	// LastScrapedAt is when the community was last swept. It is the
	// watermark for incremental fetching: items created at or before
	// this instant are never re-ingested.
	LastScrapedAt time.Time

	// PostCount is the number of posts published into the community.
	PostCount int

	// CreatedAt is when the community was created.
	CreatedAt time.Time

	// UpdatedAt is when the community was last updated.
	UpdatedAt time.Time
}

// ActiveSourceConfigs returns the configs that participate in sweeps.
func (c *Community) ActiveSourceConfigs() []SourceConfig {
	var active []SourceConfig
	for _, sc := range c.SourceConfigs {
		if sc.Active {
			active = append(active, sc)
		}
	}
	return active
}

// MaxPosts returns the community's sweep cap, falling back to def when unset.
func (c *Community) MaxPosts(def int) int {
	if c.Scraping.MaxPostsPerScrape > 0 {
		return c.Scraping.MaxPostsPerScrape
	}
	return def
}

// MinQuality returns the community's quality threshold, falling back to
// def when unset.
func (c *Community) MinQuality(def float64) float64 {
	if c.Scraping.QualityThreshold > 0 {
		return c.Scraping.QualityThreshold
	}
	return def
}
