package domain

// MongoSettings holds document store connection configuration.
type MongoSettings struct {
	// URI is the MongoDB connection string. The MONGODB_URI environment
	// variable takes precedence when set.
	URI string

	// Database is the database name.
	Database string
}

// RedisSettings holds the optional dedup seen-cache configuration.
type RedisSettings struct {
	// Enabled turns the seen-cache on. When false the deduplicator
	// queries the document store directly.
	Enabled bool

	// Addr is the Redis host:port. The REDIS_URL environment variable
	// takes precedence when set.
	Addr string
}

// EnrichmentSettings holds comment generation configuration.
type EnrichmentSettings struct {
	// Model is the Anthropic model used to generate comments.
	Model string

	// MaxTokens bounds each generation call.
	MaxTokens int
}

// IngestSettings holds engine-wide ingestion defaults. Communities may
// override the cap and threshold via their ScrapingConfig.
type IngestSettings struct {
	// MaxPostsPerSweep is the default per-community bulk sweep cap.
	MaxPostsPerSweep int

	// QualityThreshold is the default minimum quality score.
	QualityThreshold float64

	// AuthenticQualityThreshold is the stricter minimum applied in
	// authentic mode, alongside the authenticity gate.
	AuthenticQualityThreshold float64
}

// Settings holds all application settings persisted in commserver.toml.
type Settings struct {
	// Mongo holds document store settings.
	Mongo MongoSettings

	// Redis holds seen-cache settings.
	Redis RedisSettings

	// DataDir is where local state (scheduler database) lives.
	// Empty means ~/.commserver/data.
	DataDir string

	// Enrichment holds comment generation settings.
	Enrichment EnrichmentSettings

	// Ingest holds ingestion defaults.
	Ingest IngestSettings

	// Cleanup holds the maintenance policy.
	Cleanup CleanupOptions

	// Scheduler holds background task configuration.
	Scheduler SchedulerConfig
}

// DefaultSettings returns settings with sensible defaults. The Mongo
// URI is left empty: it must come from configuration or environment.
func DefaultSettings() Settings {
	return Settings{
		Mongo: MongoSettings{
			Database: "commserver",
		},
		Enrichment: EnrichmentSettings{
			Model:     "claude-3-5-haiku-latest",
			MaxTokens: 1024,
		},
		Ingest: IngestSettings{
			MaxPostsPerSweep:          50,
			QualityThreshold:          0.5,
			AuthenticQualityThreshold: 0.6,
		},
		Cleanup:   DefaultCleanupOptions(),
		Scheduler: DefaultSchedulerConfig(),
	}
}
