package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/core/ports/driving"
	"github.com/MdHasib01/commserver/internal/logger"
	"github.com/MdHasib01/commserver/internal/quality"
	"github.com/MdHasib01/commserver/internal/transform"
)

// Ensure IngestionService implements the interface.
var _ driving.Ingestor = (*IngestionService)(nil)

// Ingestion tuning.
const (
	// trickleFetchMultiple is how many items a trickle sweep fetches to
	// find its one new post.
	trickleFetchMultiple = 5

	// Seeded like count range for new posts.
	likeCountMin = 5
	likeCountMax = 15

	// Generated comment count range for new posts.
	commentCountMin = 10
	commentCountMax = 15
)

// IngestionService coordinates ingestion sweeps: fetch, dedup,
// transform, gate, persist, enrich, bookkeep. Communities and their
// source configs are processed strictly sequentially; the scrapers own
// all upstream pacing.
type IngestionService struct {
	communities driven.CommunityStore
	contents    driven.ContentStore
	users       driven.UserStore
	registry    *ScraperRegistry
	dedup       *Deduplicator
	transformer *transform.Transformer
	scorer      *quality.Scorer
	validator   *quality.Validator
	enricher    driven.CommentEnricher
	likes       driven.LikeSeeder
	rand        domain.Rand
	settings    domain.IngestSettings

	mu      sync.Mutex
	running bool
}

// NewIngestionService creates an ingestion orchestrator.
// The enricher and like seeder are optional: nil disables that
// enrichment step.
func NewIngestionService(
	communities driven.CommunityStore,
	contents driven.ContentStore,
	users driven.UserStore,
	registry *ScraperRegistry,
	dedup *Deduplicator,
	transformer *transform.Transformer,
	scorer *quality.Scorer,
	validator *quality.Validator,
	enricher driven.CommentEnricher,
	likes driven.LikeSeeder,
	rand domain.Rand,
	settings domain.IngestSettings,
) *IngestionService {
	return &IngestionService{
		communities: communities,
		contents:    contents,
		users:       users,
		registry:    registry,
		dedup:       dedup,
		transformer: transformer,
		scorer:      scorer,
		validator:   validator,
		enricher:    enricher,
		likes:       likes,
		rand:        rand,
		settings:    settings,
	}
}

// RunBulkSweep ingests up to each community's cap from every active
// community.
func (s *IngestionService) RunBulkSweep(ctx context.Context) (*domain.RunResult, error) {
	return s.sweepAll(ctx, domain.SweepBulk, 0)
}

// RunTrickleSweep ingests at most one new post per community.
func (s *IngestionService) RunTrickleSweep(ctx context.Context) (*domain.RunResult, error) {
	return s.sweepAll(ctx, domain.SweepTrickle, 0)
}

// RunAuthenticSweep ingests up to count posts into one community with
// the authenticity gate enabled. A non-positive count means one post.
func (s *IngestionService) RunAuthenticSweep(ctx context.Context, communityID string, count int) (*domain.RunResult, error) {
	if count <= 0 {
		count = 1
	}

	community, err := s.communities.Get(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("get community: %w", err)
	}

	return s.sweep(ctx, domain.SweepAuthentic, []domain.Community{*community}, count)
}

// sweepAll runs a sweep over every active community.
func (s *IngestionService) sweepAll(ctx context.Context, mode domain.SweepMode, keep int) (*domain.RunResult, error) {
	communities, err := s.communities.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active communities: %w", err)
	}
	return s.sweep(ctx, mode, communities, keep)
}

// sweep runs the per-community pipeline over the given communities.
// One sweep runs at a time per process; overlapping processes stay safe
// through the storage uniqueness constraints.
func (s *IngestionService) sweep(ctx context.Context, mode domain.SweepMode, communities []domain.Community, keep int) (*domain.RunResult, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, domain.ErrSweepInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	result := &domain.RunResult{
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}

	// The user pool is shared by every community in the sweep. A
	// lookup failure leaves it empty, which fails each community below.
	users, err := s.users.ListPlatformUsers(ctx)
	if err != nil {
		logger.Error("Listing platform users failed: %v", err)
	}

	logger.Info("Starting %s sweep over %d communities", mode, len(communities))

	for i := range communities {
		community := &communities[i]
		cr := s.sweepCommunity(ctx, community, mode, users, keep)
		result.Communities = append(result.Communities, cr)

		if cr.Err != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", community.ID, cr.Err))
		}
		for _, srcErr := range cr.SourceErrors {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", community.ID, srcErr))
		}
	}

	result.FinishedAt = time.Now().UTC()
	logger.Info("Sweep complete: %d fetched, %d persisted, %d skipped, %d communities failed",
		result.TotalFetched(), result.TotalPersisted(), result.TotalSkipped(), result.FailedCommunities())
	return result, nil
}

// sweepCommunity runs stages 1-7 for one community. Source-config
// failures are recorded and do not stop sibling configs; the watermark
// advances afterwards regardless, so a failed config's window is simply
// refetched next sweep.
//
//nolint:gocyclo // Orchestration function with necessary sequential stages
func (s *IngestionService) sweepCommunity(
	ctx context.Context,
	community *domain.Community,
	mode domain.SweepMode,
	users []domain.PlatformUser,
	keep int,
) domain.CommunityResult {
	cr := domain.CommunityResult{
		CommunityID:   community.ID,
		CommunityName: community.Name,
	}

	// An empty user pool fails the whole community: there is nobody to
	// own the content.
	if len(users) == 0 {
		cr.Err = domain.ErrNoPlatformUsers.Error()
		return cr
	}

	// The new watermark is the sweep start, not the finish: an item
	// published upstream while we run stays above the watermark and is
	// picked up next sweep.
	sweptAt := time.Now().UTC()

	if mode == domain.SweepTrickle {
		keep = 1
	}

	for _, src := range community.ActiveSourceConfigs() {
		if keep > 0 && cr.Persisted >= keep {
			break
		}

		scraper, err := s.registry.Get(src.Platform)
		if err != nil {
			cr.SourceErrors = append(cr.SourceErrors, fmt.Sprintf("%s/%s: %v", src.Platform, src.Channel, err))
			continue
		}

		// 1+2. Resolve watermark, fetch.
		opts := domain.FetchOptions{
			Limit:           s.fetchLimit(community, mode, keep),
			MinCreatedAt:    community.LastScrapedAt,
			Keywords:        src.Keywords,
			Sort:            src.Sort,
			ExcludeStickied: src.ExcludeStickied,
		}
		items, err := scraper.FetchPosts(ctx, src.Channel, opts)
		if err != nil {
			cr.SourceErrors = append(cr.SourceErrors, fmt.Sprintf("%s/%s: %v", src.Platform, src.Channel, err))
			continue
		}
		cr.Fetched += len(items)

		// 3. Filter new.
		fresh, err := s.dedup.FilterNew(ctx, items)
		if err != nil {
			cr.SourceErrors = append(cr.SourceErrors, fmt.Sprintf("%s/%s: %v", src.Platform, src.Channel, err))
			continue
		}
		cr.SkippedExisting += len(items) - len(fresh)

		// 4-6. Score, gate, persist, enrich.
		s.ingestItems(ctx, community, mode, users, keep, fresh, &cr)
	}

	// 7. Update community bookkeeping, even after partial failure.
	if err := s.communities.RecordSweep(ctx, community.ID, sweptAt, cr.Persisted); err != nil {
		cr.SourceErrors = append(cr.SourceErrors, fmt.Sprintf("recording sweep: %v", err))
	}

	return cr
}

// ingestItems runs the per-item stages for one source config's fresh
// items.
func (s *IngestionService) ingestItems(
	ctx context.Context,
	community *domain.Community,
	mode domain.SweepMode,
	users []domain.PlatformUser,
	keep int,
	items []domain.RawContentItem,
	cr *domain.CommunityResult,
) {
	threshold := s.threshold(community, mode)

	for i := range items {
		if keep > 0 && cr.Persisted >= keep {
			return
		}
		item := &items[i]

		// 4. Score and gate. The authenticity verdict is always computed
		// and stored; only authentic sweeps reject on it.
		publishable := s.transformer.Transform(item)
		score := s.scorer.Score(quality.ScoredItem{
			Body:       publishable.Body,
			MediaCount: len(publishable.Media),
			Votes:      item.Score,
			Comments:   item.NumComments,
		})
		if score < threshold {
			cr.FilteredQuality++
			continue
		}
		verdict := s.validator.Validate(item)
		if mode == domain.SweepAuthentic && !verdict.Valid {
			cr.FilteredQuality++
			logger.Debug("Rejected %s/%s: %s", item.Platform, item.OriginalID, verdict.Reason)
			continue
		}

		// 5. Persist. Re-check existence first: another run may have
		// inserted the item since the batch filter.
		isNew, err := s.dedup.IsNew(ctx, item)
		if err != nil {
			cr.SourceErrors = append(cr.SourceErrors, fmt.Sprintf("%s/%s: %v", item.Platform, item.OriginalID, err))
			continue
		}
		if !isNew {
			cr.SkippedExisting++
			continue
		}

		owner := users[s.rand.Intn(len(users))]
		likeCount := domain.IntBetween(s.rand, likeCountMin, likeCountMax)

		now := time.Now().UTC()
		record := &domain.ContentRecord{
			ID:                uuid.NewString(),
			CommunityID:       community.ID,
			OwnerID:           owner.ID,
			Title:             publishable.Title,
			Body:              publishable.Body,
			Media:             publishable.Media,
			Thumbnail:         publishable.Thumbnail,
			Tags:              publishable.Tags,
			ContentType:       publishable.ContentType,
			Platform:          item.Platform,
			OriginalID:        item.OriginalID,
			SourceURL:         item.URL,
			OriginalAuthor:    item.Author,
			OriginalCreatedAt: item.CreatedAt,
			Engagement: domain.Engagement{
				Score:       item.Score,
				Ups:         item.Ups,
				UpvoteRatio: item.UpvoteRatio,
				Comments:    item.NumComments,
			},
			QualityScore:      score,
			AuthenticityScore: verdict.Score,
			IsAuthentic:       verdict.Valid,
			ValidationMethod:  domain.ValidationHeuristic,
			Status:            domain.StatusActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := s.contents.Create(ctx, record); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				// Lost the race to a concurrent run. Not an error.
				cr.SkippedExisting++
				continue
			}
			cr.SourceErrors = append(cr.SourceErrors, fmt.Sprintf("%s/%s: persisting: %v", item.Platform, item.OriginalID, err))
			continue
		}
		cr.Persisted++
		s.dedup.MarkSeen(ctx, record)

		// 6. Enrich. Best-effort: the record stays either way.
		s.enrich(ctx, record, users, likeCount)
	}
}

// enrich seeds likes and generates comments for a new record.
func (s *IngestionService) enrich(ctx context.Context, record *domain.ContentRecord, users []domain.PlatformUser, likeCount int) {
	if s.enricher != nil {
		commentCount := domain.IntBetween(s.rand, commentCountMin, commentCountMax)
		if err := s.enricher.GenerateComments(ctx, record, users, commentCount); err != nil {
			logger.Warn("Comment generation failed for %s: %v", record.ID, err)
		}
	}
	if s.likes != nil {
		if err := s.likes.SeedLikes(ctx, record, users, likeCount); err != nil {
			logger.Warn("Like seeding failed for %s: %v", record.ID, err)
		}
	}
}

// fetchLimit returns the upstream fetch cap for one source config.
func (s *IngestionService) fetchLimit(community *domain.Community, mode domain.SweepMode, keep int) int {
	switch mode {
	case domain.SweepTrickle:
		// Fetch a small multiple so one duplicate does not starve the
		// sweep.
		return trickleFetchMultiple
	case domain.SweepAuthentic:
		return keep * trickleFetchMultiple
	default:
		return community.MaxPosts(s.settings.MaxPostsPerSweep)
	}
}

// threshold returns the minimum quality score for the mode.
func (s *IngestionService) threshold(community *domain.Community, mode domain.SweepMode) float64 {
	if mode == domain.SweepAuthentic {
		return community.MinQuality(s.settings.AuthenticQualityThreshold)
	}
	return community.MinQuality(s.settings.QualityThreshold)
}

// Cleanup hides stale low-quality records, then enforces the
// per-community active record cap. A zero option disables its rule, so
// repeated runs are safe and cheap.
func (s *IngestionService) Cleanup(ctx context.Context, opts domain.CleanupOptions) (*domain.CleanupResult, error) {
	result := &domain.CleanupResult{}

	if opts.MaxAgeDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -opts.MaxAgeDays)
		hidden, err := s.contents.HideStale(ctx, cutoff, opts.MinQuality)
		if err != nil {
			return nil, fmt.Errorf("hiding stale records: %w", err)
		}
		result.HiddenLowQuality = hidden
	}

	if opts.MaxPerCommunity > 0 {
		counts, err := s.contents.CountActiveByCommunity(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting active records: %w", err)
		}

		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			if counts[id] <= opts.MaxPerCommunity {
				continue
			}
			excess, err := s.contents.ListExcessActive(ctx, id, opts.MaxPerCommunity)
			if err != nil {
				return nil, fmt.Errorf("listing excess records for %s: %w", id, err)
			}
			hidden, err := s.contents.HideByIDs(ctx, excess)
			if err != nil {
				return nil, fmt.Errorf("hiding excess records for %s: %w", id, err)
			}
			result.HiddenExcess += hidden
		}
	}

	logger.Info("Cleanup hid %d low-quality and %d excess records", result.HiddenLowQuality, result.HiddenExcess)
	return result, nil
}
