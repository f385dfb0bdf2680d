package driving

import (
	"context"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// Ingestor coordinates content ingestion sweeps across communities.
// Sweeps always return a populated RunResult; the error is non-nil only
// when the sweep could not start at all (e.g., the community list was
// unavailable). Per-community and per-source failures are recorded
// inside the result.
type Ingestor interface {
	// RunBulkSweep ingests up to each community's cap from every active
	// community.
	RunBulkSweep(ctx context.Context) (*domain.RunResult, error)

	// RunTrickleSweep ingests at most one new post per community.
	RunTrickleSweep(ctx context.Context) (*domain.RunResult, error)

	// RunAuthenticSweep ingests up to count posts into one community
	// with the authenticity gate enabled.
	RunAuthenticSweep(ctx context.Context, communityID string, count int) (*domain.RunResult, error)

	// Cleanup hides stale low-quality records and enforces the
	// per-community active record cap. Safe to run repeatedly.
	Cleanup(ctx context.Context, opts domain.CleanupOptions) (*domain.CleanupResult, error)
}
