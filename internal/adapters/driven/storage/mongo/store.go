// Package mongo implements the driven storage ports on MongoDB, the
// database the platform application keeps its communities, users and
// posts in.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Collection names shared with the platform application.
const (
	collPosts       = "posts"
	collCommunities = "communities"
	collUsers       = "users"
	collComments    = "comments"
)

// Store is a unified MongoDB-based storage that provides access to the
// content, community, user and comment store interfaces through
// wrapper types.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for the configured deployment, verifies it
// with a ping and ensures the indexes the ingestion pipeline relies on.
func Connect(ctx context.Context, settings domain.MongoSettings) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(settings.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(settings.Database),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}

	return s, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ContentStore returns a ContentStore interface backed by this store.
func (s *Store) ContentStore() driven.ContentStore {
	return &contentStore{coll: s.db.Collection(collPosts)}
}

// CommunityStore returns a CommunityStore interface backed by this store.
func (s *Store) CommunityStore() driven.CommunityStore {
	return &communityStore{coll: s.db.Collection(collCommunities)}
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{coll: s.db.Collection(collUsers)}
}

// CommentStore returns a CommentStore interface backed by this store.
func (s *Store) CommentStore() driven.CommentStore {
	return &commentStore{coll: s.db.Collection(collComments)}
}

// ensureIndexes creates the indexes deduplication and cleanup depend
// on. Creation is idempotent: existing indexes are left untouched.
func (s *Store) ensureIndexes(ctx context.Context) error {
	posts := s.db.Collection(collPosts)

	_, err := posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "platform", Value: 1}, {Key: "originalId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// sourceUrl is omitted from documents when empty, so the
			// unique index must be sparse.
			Keys:    bson.D{{Key: "sourceUrl", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "communityId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("creating post indexes: %w", err)
	}

	comments := s.db.Collection(collComments)
	_, err = comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating comment indexes: %w", err)
	}

	return nil
}
