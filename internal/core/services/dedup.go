package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/logger"
)

// dedupWorkers bounds how many existence checks FilterNew issues
// concurrently.
const dedupWorkers = 8

// Deduplicator decides whether fetched items are new to the corpus.
// The optional seen cache answers repeat lookups without touching the
// store; a miss or a cache error always falls through to the store.
type Deduplicator struct {
	contents driven.ContentStore
	cache    driven.SeenCache
}

// NewDeduplicator creates a deduplicator. The cache may be nil.
func NewDeduplicator(contents driven.ContentStore, cache driven.SeenCache) *Deduplicator {
	return &Deduplicator{
		contents: contents,
		cache:    cache,
	}
}

// IsNew reports whether no persisted record matches the item by
// (platform, originalId) or by source URL. Stickied items are never
// new: they are upstream announcements, not content.
func (d *Deduplicator) IsNew(ctx context.Context, item *domain.RawContentItem) (bool, error) {
	if item.Stickied {
		return false, nil
	}

	if d.cacheHit(ctx, originalSeenKey(item.Platform, item.OriginalID)) {
		return false, nil
	}
	if item.URL != "" && d.cacheHit(ctx, urlSeenKey(item.URL)) {
		return false, nil
	}

	exists, err := d.contents.ExistsByOriginal(ctx, item.Platform, item.OriginalID)
	if err != nil {
		return false, fmt.Errorf("checking original id: %w", err)
	}
	if exists {
		return false, nil
	}

	if item.URL != "" {
		exists, err = d.contents.ExistsBySourceURL(ctx, item.URL)
		if err != nil {
			return false, fmt.Errorf("checking source url: %w", err)
		}
		if exists {
			return false, nil
		}
	}

	return true, nil
}

// FilterNew returns the items that are new, preserving input order.
// Existence checks run concurrently; they are read-only and
// independent.
func (d *Deduplicator) FilterNew(ctx context.Context, items []domain.RawContentItem) ([]domain.RawContentItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	isNew := make([]bool, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	sem := make(chan struct{}, dedupWorkers)
	for i := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			isNew[i], errs[i] = d.IsNew(ctx, &items[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	//nolint:prealloc // most items are usually duplicates
	var fresh []domain.RawContentItem
	for i, item := range items {
		if isNew[i] {
			fresh = append(fresh, item)
		}
	}
	return fresh, nil
}

// MarkSeen records a persisted item in the seen cache so later sweeps
// skip the store lookup. Best-effort.
func (d *Deduplicator) MarkSeen(ctx context.Context, record *domain.ContentRecord) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Mark(ctx, originalSeenKey(record.Platform, record.OriginalID)); err != nil {
		logger.Warn("Seen cache mark failed for %s/%s: %v", record.Platform, record.OriginalID, err)
		return
	}
	if record.SourceURL == "" {
		return
	}
	if err := d.cache.Mark(ctx, urlSeenKey(record.SourceURL)); err != nil {
		logger.Warn("Seen cache mark failed for %s: %v", record.SourceURL, err)
	}
}

// cacheHit reports a confirmed cache membership. Errors count as a
// miss.
func (d *Deduplicator) cacheHit(ctx context.Context, key string) bool {
	if d.cache == nil {
		return false
	}
	seen, err := d.cache.Seen(ctx, key)
	if err != nil {
		logger.Debug("Seen cache lookup failed for %s: %v", key, err)
		return false
	}
	return seen
}

func originalSeenKey(platform, originalID string) string {
	return "post:" + platform + ":" + originalID
}

func urlSeenKey(url string) string {
	return "url:" + url
}
