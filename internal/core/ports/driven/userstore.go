package driven

import (
	"context"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// UserStore looks up the synthetic platform users that own ingested
// content.
type UserStore interface {
	// ListPlatformUsers returns all synthetic accounts.
	ListPlatformUsers(ctx context.Context) ([]domain.PlatformUser, error)
}
