package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// communityStore implements driven.CommunityStore.
type communityStore struct {
	coll *mongo.Collection
}

var _ driven.CommunityStore = (*communityStore)(nil)

// sourceConfigDocument is the persisted form of domain.SourceConfig.
type sourceConfigDocument struct {
	Platform        string   `bson:"platform"`
	Channel         string   `bson:"channel"`
	Keywords        []string `bson:"keywords,omitempty"`
	Sort            string   `bson:"sort,omitempty"`
	ExcludeStickied bool     `bson:"excludeStickied"`
	Active          bool     `bson:"active"`
}

// scrapingConfigDocument is the persisted form of domain.ScrapingConfig.
type scrapingConfigDocument struct {
	MaxPostsPerScrape int     `bson:"maxPostsPerScrape,omitempty"`
	QualityThreshold  float64 `bson:"qualityThreshold,omitempty"`
}

// communityDocument is the persisted form of domain.Community. Field
// names match the platform application's communities collection.
type communityDocument struct {
	ID            string                 `bson:"_id"`
	Name          string                 `bson:"name"`
	Description   string                 `bson:"description,omitempty"`
	Active        bool                   `bson:"active"`
	SourceConfigs []sourceConfigDocument `bson:"sourceConfigs,omitempty"`
	Scraping      scrapingConfigDocument `bson:"scraping,omitempty"`
	LastScrapedAt time.Time              `bson:"lastScrapedAt,omitempty"`
	PostCount     int                    `bson:"postCount"`
	CreatedAt     time.Time              `bson:"createdAt"`
	UpdatedAt     time.Time              `bson:"updatedAt"`
}

func (d communityDocument) toDomain() domain.Community {
	community := domain.Community{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Active:      d.Active,
		Scraping: domain.ScrapingConfig{
			MaxPostsPerScrape: d.Scraping.MaxPostsPerScrape,
			QualityThreshold:  d.Scraping.QualityThreshold,
		},
		LastScrapedAt: d.LastScrapedAt,
		PostCount:     d.PostCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, sc := range d.SourceConfigs {
		community.SourceConfigs = append(community.SourceConfigs, domain.SourceConfig{
			Platform:        sc.Platform,
			Channel:         sc.Channel,
			Keywords:        sc.Keywords,
			Sort:            sc.Sort,
			ExcludeStickied: sc.ExcludeStickied,
			Active:          sc.Active,
		})
	}
	return community
}

// Get retrieves a community by ID.
func (s *communityStore) Get(ctx context.Context, id string) (*domain.Community, error) {
	var doc communityDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding community: %w", err)
	}
	community := doc.toDomain()
	return &community, nil
}

// ListActive returns sweep-eligible communities: active with at least
// one active source config.
func (s *communityStore) ListActive(ctx context.Context) ([]domain.Community, error) {
	filter := bson.M{"active": true, "sourceConfigs.active": true}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing active communities: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []communityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding communities: %w", err)
	}

	communities := make([]domain.Community, 0, len(docs))
	for _, doc := range docs {
		communities = append(communities, doc.toDomain())
	}
	return communities, nil
}

// RecordSweep advances the community's watermark and increments its
// post count.
func (s *communityStore) RecordSweep(ctx context.Context, id string, sweptAt time.Time, newPosts int) error {
	update := bson.M{
		"$set": bson.M{"lastScrapedAt": sweptAt, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"postCount": newPosts},
	}
	result, err := s.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("recording sweep: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
