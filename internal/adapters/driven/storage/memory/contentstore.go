package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
// It enforces the same uniqueness rules as the MongoDB adapter:
// (platform, originalID) and sourceURL are unique across records.
type ContentStore struct {
	mu         sync.RWMutex
	records    map[string]domain.ContentRecord
	byOriginal map[string]string
	byURL      map[string]string
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		records:    make(map[string]domain.ContentRecord),
		byOriginal: make(map[string]string),
		byURL:      make(map[string]string),
	}
}

func originalKey(platform, originalID string) string {
	return platform + "\x00" + originalID
}

// Create stores a new record. Returns domain.ErrAlreadyExists when a
// record with the same (platform, originalID) or sourceURL exists.
func (s *ContentStore) Create(_ context.Context, record *domain.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; ok {
		return domain.ErrAlreadyExists
	}
	if _, ok := s.byOriginal[originalKey(record.Platform, record.OriginalID)]; ok {
		return domain.ErrAlreadyExists
	}
	if record.SourceURL != "" {
		if _, ok := s.byURL[record.SourceURL]; ok {
			return domain.ErrAlreadyExists
		}
	}

	s.records[record.ID] = *record
	s.byOriginal[originalKey(record.Platform, record.OriginalID)] = record.ID
	if record.SourceURL != "" {
		s.byURL[record.SourceURL] = record.ID
	}
	return nil
}

// Get retrieves a record by ID.
func (s *ContentStore) Get(_ context.Context, id string) (*domain.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// ExistsByOriginal reports whether a record with the given platform and
// upstream ID exists.
func (s *ContentStore) ExistsByOriginal(_ context.Context, platform, originalID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byOriginal[originalKey(platform, originalID)]
	return ok, nil
}

// ExistsBySourceURL reports whether a record with the given upstream
// URL exists.
func (s *ContentStore) ExistsBySourceURL(_ context.Context, sourceURL string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byURL[sourceURL]
	return ok, nil
}

// AddLikes appends platform user IDs to a record's liked-by list,
// skipping IDs already present.
func (s *ContentStore) AddLikes(_ context.Context, id string, userIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}

	seen := make(map[string]bool, len(record.LikedBy))
	for _, existing := range record.LikedBy {
		seen[existing] = true
	}
	for _, userID := range userIDs {
		if !seen[userID] {
			record.LikedBy = append(record.LikedBy, userID)
			seen[userID] = true
		}
	}
	record.UpdatedAt = time.Now()
	s.records[id] = record
	return nil
}

// SetCommentCount updates a record's comment counter.
func (s *ContentStore) SetCommentCount(_ context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	record.CommentCount = count
	record.UpdatedAt = time.Now()
	s.records[id] = record
	return nil
}

// HideStale transitions active records created before cutoff with a
// quality score below minQuality to hidden.
func (s *ContentStore) HideStale(_ context.Context, cutoff time.Time, minQuality float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hidden := 0
	for id, record := range s.records {
		if record.Status != domain.StatusActive {
			continue
		}
		if !record.CreatedAt.Before(cutoff) {
			continue
		}
		if record.QualityScore >= minQuality {
			continue
		}
		record.Status = domain.StatusHidden
		record.UpdatedAt = time.Now()
		s.records[id] = record
		hidden++
	}
	return hidden, nil
}

// CountActiveByCommunity returns active record counts grouped by
// community ID.
func (s *ContentStore) CountActiveByCommunity(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, record := range s.records {
		if record.Status == domain.StatusActive {
			counts[record.CommunityID]++
		}
	}
	return counts, nil
}

// ListExcessActive returns the IDs of a community's active records
// beyond its keep most recent, oldest first.
func (s *ContentStore) ListExcessActive(_ context.Context, communityID string, keep int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.ContentRecord
	for _, record := range s.records {
		if record.CommunityID == communityID && record.Status == domain.StatusActive {
			active = append(active, record)
		}
	}
	if keep < 0 {
		keep = 0
	}
	if len(active) <= keep {
		return nil, nil
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	excess := make([]string, 0, len(active)-keep)
	for _, record := range active[:len(active)-keep] {
		excess = append(excess, record.ID)
	}
	return excess, nil
}

// HideByIDs transitions the given records to hidden. Records that are
// missing or already hidden are skipped.
func (s *ContentStore) HideByIDs(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hidden := 0
	for _, id := range ids {
		record, ok := s.records[id]
		if !ok || record.Status != domain.StatusActive {
			continue
		}
		record.Status = domain.StatusHidden
		record.UpdatedAt = time.Now()
		s.records[id] = record
		hidden++
	}
	return hidden, nil
}
