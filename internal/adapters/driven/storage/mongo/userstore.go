package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// userStore implements driven.UserStore.
type userStore struct {
	coll *mongo.Collection
}

var _ driven.UserStore = (*userStore)(nil)

// userDocument is the persisted form of domain.PlatformUser. Field
// names match the platform application's users collection.
type userDocument struct {
	ID             string    `bson:"_id"`
	Username       string    `bson:"username"`
	DisplayName    string    `bson:"displayName,omitempty"`
	AvatarURL      string    `bson:"avatarUrl,omitempty"`
	IsPlatformUser bool      `bson:"isPlatformUser"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// ListPlatformUsers returns all synthetic accounts.
func (s *userStore) ListPlatformUsers(ctx context.Context) ([]domain.PlatformUser, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"isPlatformUser": true})
	if err != nil {
		return nil, fmt.Errorf("listing platform users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding platform users: %w", err)
	}

	users := make([]domain.PlatformUser, 0, len(docs))
	for _, doc := range docs {
		users = append(users, domain.PlatformUser{
			ID:             doc.ID,
			Username:       doc.Username,
			DisplayName:    doc.DisplayName,
			AvatarURL:      doc.AvatarURL,
			IsPlatformUser: doc.IsPlatformUser,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return users, nil
}
