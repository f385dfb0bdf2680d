package driven

import (
	"context"
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// ContentStore persists published posts.
// Backed by MongoDB with unique indexes on (platform, originalId) and
// sourceUrl; Create surfaces index violations as domain.ErrAlreadyExists.
type ContentStore interface {
	// Create stores a new record. Returns domain.ErrAlreadyExists when
	// a record with the same (platform, originalId) or sourceUrl exists.
	Create(ctx context.Context, record *domain.ContentRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.ContentRecord, error)

	// ExistsByOriginal reports whether a record with the given platform
	// and upstream ID exists. Implementations use an index-only lookup,
	// not a full fetch.
	ExistsByOriginal(ctx context.Context, platform, originalID string) (bool, error)

	// ExistsBySourceURL reports whether a record with the given
	// upstream URL exists.
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)

	// AddLikes appends platform user IDs to a record's liked-by list.
	AddLikes(ctx context.Context, id string, userIDs []string) error

	// SetCommentCount updates a record's comment counter.
	SetCommentCount(ctx context.Context, id string, count int) error

	// HideStale transitions active records created before cutoff with a
	// quality score below minQuality to hidden. Returns how many
	// records changed state.
	HideStale(ctx context.Context, cutoff time.Time, minQuality float64) (int, error)

	// CountActiveByCommunity returns active record counts grouped by
	// community ID.
	CountActiveByCommunity(ctx context.Context) (map[string]int, error)

	// ListExcessActive returns the IDs of a community's active records
	// beyond its keep most recent, oldest first.
	ListExcessActive(ctx context.Context, communityID string, keep int) ([]string, error)

	// HideByIDs transitions the given records to hidden. Returns how
	// many records changed state.
	HideByIDs(ctx context.Context, ids []string) (int, error)
}
