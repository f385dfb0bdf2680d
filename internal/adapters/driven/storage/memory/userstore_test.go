package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

func TestUserStore_ListPlatformUsers(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.PlatformUser{ID: "u2", Username: "beta", IsPlatformUser: true}))
	require.NoError(t, store.Save(ctx, domain.PlatformUser{ID: "u1", Username: "alpha", IsPlatformUser: true}))
	require.NoError(t, store.Save(ctx, domain.PlatformUser{ID: "u3", Username: "human", IsPlatformUser: false}))

	users, err := store.ListPlatformUsers(ctx)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u2", users[1].ID)
}

func TestUserStore_ListPlatformUsers_Empty(t *testing.T) {
	store := NewUserStore()

	users, err := store.ListPlatformUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
