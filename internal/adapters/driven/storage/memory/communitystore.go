package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure CommunityStore implements the interface.
var _ driven.CommunityStore = (*CommunityStore)(nil)

// CommunityStore is an in-memory implementation of driven.CommunityStore.
type CommunityStore struct {
	mu          sync.RWMutex
	communities map[string]domain.Community
}

// NewCommunityStore creates a new in-memory community store.
func NewCommunityStore() *CommunityStore {
	return &CommunityStore{
		communities: make(map[string]domain.Community),
	}
}

// Save stores or updates a community. Communities are managed by the
// platform application; this method exists for seeding.
func (s *CommunityStore) Save(_ context.Context, community domain.Community) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.communities[community.ID] = community
	return nil
}

// Get retrieves a community by ID.
func (s *CommunityStore) Get(_ context.Context, id string) (*domain.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	community, ok := s.communities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &community, nil
}

// ListActive returns sweep-eligible communities sorted by ID.
func (s *CommunityStore) ListActive(_ context.Context) ([]domain.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.Community
	for _, community := range s.communities {
		if !community.Active {
			continue
		}
		if len(community.ActiveSourceConfigs()) == 0 {
			continue
		}
		active = append(active, community)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})
	return active, nil
}

// RecordSweep advances the community's watermark and increments its
// post count.
func (s *CommunityStore) RecordSweep(_ context.Context, id string, sweptAt time.Time, newPosts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	community, ok := s.communities[id]
	if !ok {
		return domain.ErrNotFound
	}
	community.LastScrapedAt = sweptAt
	community.PostCount += newPosts
	community.UpdatedAt = time.Now()
	s.communities[id] = community
	return nil
}
