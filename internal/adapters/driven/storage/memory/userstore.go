package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.PlatformUser
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]domain.PlatformUser),
	}
}

// Save stores or updates a user. Users are managed by the platform
// application; this method exists for seeding.
func (s *UserStore) Save(_ context.Context, user domain.PlatformUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

// ListPlatformUsers returns all synthetic accounts sorted by ID.
func (s *UserStore) ListPlatformUsers(_ context.Context) ([]domain.PlatformUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []domain.PlatformUser
	for _, user := range s.users {
		if user.IsPlatformUser {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users, nil
}
