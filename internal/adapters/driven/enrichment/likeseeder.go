// Package enrichment provides the post-persist engagement adapters:
// seeded likes and generated comments for freshly published posts.
package enrichment

import (
	"context"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure LikeSeeder implements the interface.
var _ driven.LikeSeeder = (*LikeSeeder)(nil)

// LikeSeeder attaches likes from randomly chosen platform users to a
// post.
type LikeSeeder struct {
	contents driven.ContentStore
	rand     domain.Rand
}

// NewLikeSeeder creates a like seeder writing through the given store.
func NewLikeSeeder(contents driven.ContentStore, rnd domain.Rand) *LikeSeeder {
	return &LikeSeeder{
		contents: contents,
		rand:     rnd,
	}
}

// SeedLikes attaches likes from count distinct platform users to the
// record. The post's owner never likes their own post. When fewer
// eligible users exist than count, every eligible user likes the post.
func (s *LikeSeeder) SeedLikes(ctx context.Context, record *domain.ContentRecord, users []domain.PlatformUser, count int) error {
	pool := make([]string, 0, len(users))
	for _, user := range users {
		if user.ID != record.OwnerID {
			pool = append(pool, user.ID)
		}
	}
	if len(pool) == 0 {
		return domain.ErrNoPlatformUsers
	}
	if count > len(pool) {
		count = len(pool)
	}
	if count <= 0 {
		return nil
	}

	// Partial Fisher-Yates: the first count slots end up holding a
	// uniform sample without replacement.
	for i := 0; i < count; i++ {
		j := i + s.rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return s.contents.AddLikes(ctx, record.ID, pool[:count])
}
