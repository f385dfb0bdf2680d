// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Scraper: Fetches raw items and comments from an upstream platform
//   - ContentStore: Published post persistence
//   - CommunityStore: Community configuration and watermark persistence
//   - UserStore: Platform user lookup
//   - CommentStore: Engagement comment persistence
//   - SettingsStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SeenCache: Fast dedup membership checks in front of ContentStore
//   - CommentEnricher: AI comment generation after publication
//   - LikeSeeder: Initial like seeding after publication
//   - SchedulerStore: Background task state (only the schedule daemon needs it)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or scraper package
package driven
