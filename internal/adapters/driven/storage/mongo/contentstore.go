package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// contentStore implements driven.ContentStore.
type contentStore struct {
	coll *mongo.Collection
}

var _ driven.ContentStore = (*contentStore)(nil)

// mediaDocument is the persisted form of domain.Media.
type mediaDocument struct {
	Type         string `bson:"type"`
	URL          string `bson:"url"`
	ThumbnailURL string `bson:"thumbnailUrl,omitempty"`
}

// engagementDocument is the persisted form of domain.Engagement.
type engagementDocument struct {
	Score       int     `bson:"score"`
	Ups         int     `bson:"ups"`
	UpvoteRatio float64 `bson:"upvoteRatio"`
	Comments    int     `bson:"comments"`
}

// contentDocument is the persisted form of domain.ContentRecord. Field
// names match the platform application's posts collection.
type contentDocument struct {
	ID                string             `bson:"_id"`
	CommunityID       string             `bson:"communityId"`
	OwnerID           string             `bson:"ownerId"`
	Title             string             `bson:"title"`
	Body              string             `bson:"body"`
	Media             []mediaDocument    `bson:"media,omitempty"`
	Thumbnail         string             `bson:"thumbnail,omitempty"`
	Tags              []string           `bson:"tags,omitempty"`
	ContentType       string             `bson:"contentType,omitempty"`
	Platform          string             `bson:"platform"`
	OriginalID        string             `bson:"originalId"`
	SourceURL         string             `bson:"sourceUrl,omitempty"`
	OriginalAuthor    string             `bson:"originalAuthor,omitempty"`
	OriginalCreatedAt time.Time          `bson:"originalCreatedAt"`
	Engagement        engagementDocument `bson:"engagement"`
	QualityScore      float64            `bson:"qualityScore"`
	AuthenticityScore float64            `bson:"authenticityScore"`
	IsAuthentic       bool               `bson:"isAuthentic"`
	ValidationMethod  string             `bson:"validationMethod,omitempty"`
	LikedBy           []string           `bson:"likedBy,omitempty"`
	CommentCount      int                `bson:"commentCount"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func toContentDocument(record *domain.ContentRecord) contentDocument {
	doc := contentDocument{
		ID:                record.ID,
		CommunityID:       record.CommunityID,
		OwnerID:           record.OwnerID,
		Title:             record.Title,
		Body:              record.Body,
		Thumbnail:         record.Thumbnail,
		Tags:              record.Tags,
		ContentType:       string(record.ContentType),
		Platform:          record.Platform,
		OriginalID:        record.OriginalID,
		SourceURL:         record.SourceURL,
		OriginalAuthor:    record.OriginalAuthor,
		OriginalCreatedAt: record.OriginalCreatedAt,
		Engagement: engagementDocument{
			Score:       record.Engagement.Score,
			Ups:         record.Engagement.Ups,
			UpvoteRatio: record.Engagement.UpvoteRatio,
			Comments:    record.Engagement.Comments,
		},
		QualityScore:      record.QualityScore,
		AuthenticityScore: record.AuthenticityScore,
		IsAuthentic:       record.IsAuthentic,
		ValidationMethod:  record.ValidationMethod,
		LikedBy:           record.LikedBy,
		CommentCount:      record.CommentCount,
		Status:            string(record.Status),
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
	for _, m := range record.Media {
		doc.Media = append(doc.Media, mediaDocument{
			Type:         string(m.Type),
			URL:          m.URL,
			ThumbnailURL: m.ThumbnailURL,
		})
	}
	return doc
}

func (d contentDocument) toDomain() *domain.ContentRecord {
	record := &domain.ContentRecord{
		ID:                d.ID,
		CommunityID:       d.CommunityID,
		OwnerID:           d.OwnerID,
		Title:             d.Title,
		Body:              d.Body,
		Thumbnail:         d.Thumbnail,
		Tags:              d.Tags,
		ContentType:       domain.ContentType(d.ContentType),
		Platform:          d.Platform,
		OriginalID:        d.OriginalID,
		SourceURL:         d.SourceURL,
		OriginalAuthor:    d.OriginalAuthor,
		OriginalCreatedAt: d.OriginalCreatedAt,
		Engagement: domain.Engagement{
			Score:       d.Engagement.Score,
			Ups:         d.Engagement.Ups,
			UpvoteRatio: d.Engagement.UpvoteRatio,
			Comments:    d.Engagement.Comments,
		},
		QualityScore:      d.QualityScore,
		AuthenticityScore: d.AuthenticityScore,
		IsAuthentic:       d.IsAuthentic,
		ValidationMethod:  d.ValidationMethod,
		LikedBy:           d.LikedBy,
		CommentCount:      d.CommentCount,
		Status:            domain.ContentStatus(d.Status),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	for _, m := range d.Media {
		record.Media = append(record.Media, domain.Media{
			Type:         domain.MediaType(m.Type),
			URL:          m.URL,
			ThumbnailURL: m.ThumbnailURL,
		})
	}
	return record
}

// Create stores a new record. Unique index violations on
// (platform, originalId) or sourceUrl surface as domain.ErrAlreadyExists.
func (s *contentStore) Create(ctx context.Context, record *domain.ContentRecord) error {
	_, err := s.coll.InsertOne(ctx, toContentDocument(record))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *contentStore) Get(ctx context.Context, id string) (*domain.ContentRecord, error) {
	var doc contentDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding post: %w", err)
	}
	return doc.toDomain(), nil
}

// ExistsByOriginal reports whether a record with the given platform and
// upstream ID exists using an index-covered count.
func (s *contentStore) ExistsByOriginal(ctx context.Context, platform, originalID string) (bool, error) {
	filter := bson.M{"platform": platform, "originalId": originalID}
	count, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("counting posts by original: %w", err)
	}
	return count > 0, nil
}

// ExistsBySourceURL reports whether a record with the given upstream
// URL exists.
func (s *contentStore) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"sourceUrl": sourceURL}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("counting posts by source url: %w", err)
	}
	return count > 0, nil
}

// AddLikes appends platform user IDs to a record's liked-by list.
func (s *contentStore) AddLikes(ctx context.Context, id string, userIDs []string) error {
	update := bson.M{
		"$addToSet": bson.M{"likedBy": bson.M{"$each": userIDs}},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := s.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("adding likes: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetCommentCount updates a record's comment counter.
func (s *contentStore) SetCommentCount(ctx context.Context, id string, count int) error {
	update := bson.M{
		"$set": bson.M{"commentCount": count, "updatedAt": time.Now().UTC()},
	}
	result, err := s.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("setting comment count: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HideStale transitions active records created before cutoff with a
// quality score below minQuality to hidden.
func (s *contentStore) HideStale(ctx context.Context, cutoff time.Time, minQuality float64) (int, error) {
	filter := bson.M{
		"status":       string(domain.StatusActive),
		"createdAt":    bson.M{"$lt": cutoff},
		"qualityScore": bson.M{"$lt": minQuality},
	}
	update := bson.M{
		"$set": bson.M{"status": string(domain.StatusHidden), "updatedAt": time.Now().UTC()},
	}
	result, err := s.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("hiding stale posts: %w", err)
	}
	return int(result.ModifiedCount), nil
}

// CountActiveByCommunity returns active record counts grouped by
// community ID.
func (s *contentStore) CountActiveByCommunity(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: string(domain.StatusActive)}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$communityId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("counting active posts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CommunityID string `bson:"_id"`
		Count       int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding active post counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CommunityID] = row.Count
	}
	return counts, nil
}

// ListExcessActive returns the IDs of a community's active records
// beyond its keep most recent, oldest first.
func (s *contentStore) ListExcessActive(ctx context.Context, communityID string, keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}

	filter := bson.M{"communityId": communityID, "status": string(domain.StatusActive)}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing excess posts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding excess posts: %w", err)
	}

	// The query returns newest first; reverse so callers hide the
	// oldest excess first.
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[len(rows)-1-i] = row.ID
	}
	return ids, nil
}

// HideByIDs transitions the given records to hidden.
func (s *contentStore) HideByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}, "status": string(domain.StatusActive)}
	update := bson.M{
		"$set": bson.M{"status": string(domain.StatusHidden), "updatedAt": time.Now().UTC()},
	}
	result, err := s.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("hiding posts: %w", err)
	}
	return int(result.ModifiedCount), nil
}
