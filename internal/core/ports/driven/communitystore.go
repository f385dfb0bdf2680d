package driven

import (
	"context"
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// CommunityStore persists communities and their sweep watermarks.
type CommunityStore interface {
	// Get retrieves a community by ID.
	// Returns domain.ErrNotFound when it does not exist.
	Get(ctx context.Context, id string) (*domain.Community, error)

	// ListActive returns communities that participate in sweeps: active
	// with at least one active source config.
	ListActive(ctx context.Context) ([]domain.Community, error)

	// RecordSweep advances the community's watermark and increments its
	// post count after a sweep. Called once per community per sweep.
	RecordSweep(ctx context.Context, id string, sweptAt time.Time, newPosts int) error
}
