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

// commentStore implements driven.CommentStore.
type commentStore struct {
	coll *mongo.Collection
}

var _ driven.CommentStore = (*commentStore)(nil)

// commentDocument is the persisted form of domain.Comment.
type commentDocument struct {
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	AuthorID  string    `bson:"authorId"`
	Body      string    `bson:"body"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Create stores a new comment.
func (s *commentStore) Create(ctx context.Context, comment *domain.Comment) error {
	doc := commentDocument{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
	_, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

// CountByPost returns how many comments a post has.
func (s *commentStore) CountByPost(ctx context.Context, postID string) (int, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	return int(count), nil
}
