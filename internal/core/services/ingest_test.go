package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MdHasib01/commserver/internal/adapters/driven/storage/memory"
	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/quality"
	"github.com/MdHasib01/commserver/internal/transform"
)

// --- Mock implementations for ingestion testing ---

type fetchCall struct {
	channel string
	opts    domain.FetchOptions
}

// mockScraper implements driven.Scraper with canned items per channel.
type mockScraper struct {
	mu          sync.Mutex
	platform    string
	items       map[string][]domain.RawContentItem
	errs        map[string]error
	calls       []fetchCall
	blockCh     chan struct{}
	started     chan struct{}
	startedOnce sync.Once
}

func newMockScraper() *mockScraper {
	return &mockScraper{
		platform: "reddit",
		items:    make(map[string][]domain.RawContentItem),
		errs:     make(map[string]error),
	}
}

func (m *mockScraper) Platform() string { return m.platform }

func (m *mockScraper) FetchPosts(_ context.Context, channel string, opts domain.FetchOptions) ([]domain.RawContentItem, error) {
	if m.started != nil {
		m.startedOnce.Do(func() { close(m.started) })
	}
	if m.blockCh != nil {
		<-m.blockCh
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fetchCall{channel: channel, opts: opts})
	if err := m.errs[channel]; err != nil {
		return nil, err
	}
	items := m.items[channel]
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items, nil
}

func (m *mockScraper) FetchComments(_ context.Context, _ string, _ int) ([]domain.RawComment, error) {
	return nil, nil
}

func (m *mockScraper) fetchCalls() []fetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]fetchCall(nil), m.calls...)
}

// mockEnricher implements driven.CommentEnricher, recording requested
// counts per post.
type mockEnricher struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (m *mockEnricher) GenerateComments(_ context.Context, record *domain.ContentRecord, _ []domain.PlatformUser, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[record.ID] = count
	return m.err
}

// mockSeeder implements driven.LikeSeeder, recording requested counts
// per post.
type mockSeeder struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (m *mockSeeder) SeedLikes(_ context.Context, record *domain.ContentRecord, _ []domain.PlatformUser, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[record.ID] = count
	return m.err
}

// Ensure mocks implement interfaces
var (
	_ driven.Scraper         = (*mockScraper)(nil)
	_ driven.CommentEnricher = (*mockEnricher)(nil)
	_ driven.LikeSeeder      = (*mockSeeder)(nil)
)

// --- Fixtures ---

type ingestFixture struct {
	communities *memory.CommunityStore
	contents    *memory.ContentStore
	users       *memory.UserStore
	scraper     *mockScraper
	enricher    *mockEnricher
	seeder      *mockSeeder
	service     *IngestionService
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()
	f := &ingestFixture{
		communities: memory.NewCommunityStore(),
		contents:    memory.NewContentStore(),
		users:       memory.NewUserStore(),
		scraper:     newMockScraper(),
		enricher:    &mockEnricher{},
		seeder:      &mockSeeder{},
	}

	registry := NewScraperRegistry()
	registry.Register(f.scraper)

	ctx := context.Background()
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, f.users.Save(ctx, domain.PlatformUser{ID: id, Username: id, IsPlatformUser: true}))
	}

	f.service = NewIngestionService(
		f.communities,
		f.contents,
		f.users,
		registry,
		NewDeduplicator(f.contents, nil),
		transform.New(domain.NewSeededRand(7)),
		quality.NewScorer(),
		quality.NewValidator(),
		f.enricher,
		f.seeder,
		domain.NewSeededRand(7),
		domain.DefaultSettings().Ingest,
	)
	return f
}

func testCommunity(id string, channels ...string) domain.Community {
	configs := make([]domain.SourceConfig, 0, len(channels))
	for _, ch := range channels {
		configs = append(configs, domain.SourceConfig{
			Platform: "reddit",
			Channel:  ch,
			Sort:     "new",
			Active:   true,
		})
	}
	return domain.Community{
		ID:            id,
		Name:          "Community " + id,
		Active:        true,
		SourceConfigs: configs,
		CreatedAt:     time.Now().UTC(),
	}
}

// goodItem scores well above both quality thresholds and reads as
// plausible engagement to the validator.
func goodItem(id, channel string) domain.RawContentItem {
	return domain.RawContentItem{
		Platform:    "reddit",
		OriginalID:  id,
		Channel:     channel,
		Title:       "PSA: " + id + " release notes",
		Body:        strings.Repeat("x", 2000),
		URL:         "https://reddit.com/r/" + channel + "/comments/" + id,
		Author:      "upstream_author",
		CreatedAt:   time.Now().Add(-time.Hour),
		Score:       500,
		Ups:         600,
		UpvoteRatio: 0.95,
		NumComments: 200,
	}
}

// weakItem falls below the default quality gate.
func weakItem(id, channel string) domain.RawContentItem {
	return domain.RawContentItem{
		Platform:   "reddit",
		OriginalID: id,
		Channel:    channel,
		Title:      "meh",
		Body:       "short",
		URL:        "https://reddit.com/r/" + channel + "/comments/" + id,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
}

// ==================== Sweep Tests ====================

func TestIngestionService_RunBulkSweep_PersistsNewItems(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.scraper.items["golang"] = []domain.RawContentItem{
		goodItem("aaa", "golang"),
		goodItem("bbb", "golang"),
		goodItem("ccc", "golang"),
	}

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	require.Len(t, result.Communities, 1)
	cr := result.Communities[0]
	assert.Equal(t, 3, cr.Fetched)
	assert.Equal(t, 3, cr.Persisted)
	assert.Zero(t, cr.SkippedExisting)
	assert.Zero(t, cr.FilteredQuality)
	assert.Empty(t, cr.SourceErrors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, result.TotalPersisted())

	// The persisted record carries the transformed item.
	records := activeRecords(t, f.contents, "comm-1")
	require.Len(t, records, 3)
	byOriginal := make(map[string]domain.ContentRecord, len(records))
	for _, r := range records {
		byOriginal[r.OriginalID] = r
	}
	record, ok := byOriginal["aaa"]
	require.True(t, ok)
	assert.Equal(t, "Aaa release notes", record.Title, "jargon prefix stripped")
	assert.Equal(t, "comm-1", record.CommunityID)
	assert.Contains(t, []string{"u1", "u2", "u3"}, record.OwnerID)
	assert.Equal(t, domain.StatusActive, record.Status)
	assert.Equal(t, "upstream_author", record.OriginalAuthor)
	assert.Contains(t, record.Tags, "golang")
	assert.Equal(t, domain.ContentText, record.ContentType)
	assert.GreaterOrEqual(t, record.QualityScore, 0.5)

	// The upstream engagement snapshot and authenticity verdict are
	// stored on every record, not just authentic-mode ones.
	assert.Equal(t, domain.Engagement{Score: 500, Ups: 600, UpvoteRatio: 0.95, Comments: 200}, record.Engagement)
	assert.True(t, record.IsAuthentic)
	assert.GreaterOrEqual(t, record.AuthenticityScore, 0.5)
	assert.Equal(t, domain.ValidationHeuristic, record.ValidationMethod)

	// Bookkeeping ran once with the persisted count.
	community, err := f.communities.Get(ctx, "comm-1")
	require.NoError(t, err)
	assert.Equal(t, 3, community.PostCount)
	assert.False(t, community.LastScrapedAt.IsZero())

	// Every record was enriched.
	require.Len(t, f.enricher.counts, 3)
	require.Len(t, f.seeder.counts, 3)
	for id, count := range f.enricher.counts {
		assert.GreaterOrEqual(t, count, 10, "comment count for %s", id)
		assert.LessOrEqual(t, count, 15, "comment count for %s", id)
	}
	for id, count := range f.seeder.counts {
		assert.GreaterOrEqual(t, count, 5, "like count for %s", id)
		assert.LessOrEqual(t, count, 15, "like count for %s", id)
	}
}

func TestIngestionService_RunBulkSweep_SecondRunIsIdempotent(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.scraper.items["golang"] = []domain.RawContentItem{
		goodItem("aaa", "golang"),
		goodItem("bbb", "golang"),
	}

	first, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, first.TotalPersisted())

	// Upstream unchanged: the second sweep recognises everything.
	second, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.TotalPersisted())
	assert.Equal(t, 2, second.TotalSkipped())
}

func TestIngestionService_RunBulkSweep_ExistingSourceURLSkipped(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))

	// Same URL already persisted under a different upstream id.
	require.NoError(t, f.contents.Create(ctx, &domain.ContentRecord{
		ID:          "existing",
		CommunityID: "comm-1",
		OwnerID:     "u1",
		Platform:    "reddit",
		OriginalID:  "old-id",
		SourceURL:   "https://reddit.com/r/golang/comments/aaa",
		Status:      domain.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}))
	f.scraper.items["golang"] = []domain.RawContentItem{goodItem("aaa", "golang")}

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	cr := result.Communities[0]
	assert.Zero(t, cr.Persisted)
	assert.Equal(t, 1, cr.SkippedExisting)
}

func TestIngestionService_RunBulkSweep_QualityGate(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.scraper.items["golang"] = []domain.RawContentItem{
		goodItem("aaa", "golang"),
		weakItem("bbb", "golang"),
	}

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	cr := result.Communities[0]
	assert.Equal(t, 2, cr.Fetched)
	assert.Equal(t, 1, cr.Persisted)
	assert.Equal(t, 1, cr.FilteredQuality)
}

func TestIngestionService_RunBulkSweep_NoPlatformUsers(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.users = memory.NewUserStore() // empty pool

	// Rebuild the service against the empty user store.
	registry := NewScraperRegistry()
	registry.Register(f.scraper)
	service := NewIngestionService(
		f.communities, f.contents, f.users, registry,
		NewDeduplicator(f.contents, nil),
		transform.New(domain.NewSeededRand(7)),
		quality.NewScorer(), quality.NewValidator(),
		f.enricher, f.seeder,
		domain.NewSeededRand(7), domain.DefaultSettings().Ingest,
	)
	f.scraper.items["golang"] = []domain.RawContentItem{goodItem("aaa", "golang")}

	result, err := service.RunBulkSweep(ctx)
	require.NoError(t, err, "sweeps report community failures, they do not reject")

	require.Len(t, result.Communities, 1)
	assert.Contains(t, result.Communities[0].Err, "no platform users")
	assert.Equal(t, 1, result.FailedCommunities())
	assert.Empty(t, f.scraper.fetchCalls(), "a failed community never hits upstream")

	// The watermark must not move: those items are still ingestable.
	community, err := f.communities.Get(ctx, "comm-1")
	require.NoError(t, err)
	assert.True(t, community.LastScrapedAt.IsZero())
}

func TestIngestionService_RunBulkSweep_SourceConfigIsolation(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang", "webdev")))
	f.scraper.errs["golang"] = errors.New("reddit API error (503): upstream unavailable")
	f.scraper.items["webdev"] = []domain.RawContentItem{goodItem("aaa", "webdev")}

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	cr := result.Communities[0]
	assert.False(t, cr.Failed(), "a source failure does not fail the community")
	require.Len(t, cr.SourceErrors, 1)
	assert.Contains(t, cr.SourceErrors[0], "golang")
	assert.Equal(t, 1, cr.Persisted)

	// The watermark still advances: the failed source refetches its
	// window next sweep.
	community, err := f.communities.Get(ctx, "comm-1")
	require.NoError(t, err)
	assert.False(t, community.LastScrapedAt.IsZero())
}

func TestIngestionService_RunBulkSweep_CommunityIsolation(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-2", "webdev")))
	f.scraper.errs["golang"] = errors.New("boom")
	f.scraper.items["webdev"] = []domain.RawContentItem{goodItem("aaa", "webdev")}

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	require.Len(t, result.Communities, 2)
	assert.Equal(t, 1, result.TotalPersisted())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "comm-1")
}

func TestIngestionService_RunBulkSweep_UnsupportedPlatform(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	community := testCommunity("comm-1", "golang")
	community.SourceConfigs = append(community.SourceConfigs, domain.SourceConfig{
		Platform: "lobsters",
		Channel:  "go",
		Active:   true,
	})
	require.NoError(t, f.communities.Save(ctx, community))
	f.scraper.items["golang"] = []domain.RawContentItem{goodItem("aaa", "golang")}

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	cr := result.Communities[0]
	assert.Equal(t, 1, cr.Persisted)
	require.Len(t, cr.SourceErrors, 1)
	assert.Contains(t, cr.SourceErrors[0], "unsupported platform")
}

func TestIngestionService_RunBulkSweep_PassesWatermarkAndFilters(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	watermark := time.Now().Add(-24 * time.Hour).UTC()
	community := testCommunity("comm-1", "golang")
	community.LastScrapedAt = watermark
	community.SourceConfigs[0].Keywords = []string{"release"}
	community.SourceConfigs[0].ExcludeStickied = true
	community.Scraping.MaxPostsPerScrape = 10
	require.NoError(t, f.communities.Save(ctx, community))

	_, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	calls := f.scraper.fetchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "golang", calls[0].channel)
	assert.Equal(t, 10, calls[0].opts.Limit)
	assert.True(t, calls[0].opts.MinCreatedAt.Equal(watermark))
	assert.Equal(t, []string{"release"}, calls[0].opts.Keywords)
	assert.True(t, calls[0].opts.ExcludeStickied)
	assert.Equal(t, "new", calls[0].opts.Sort)
}

func TestIngestionService_RunTrickleSweep_KeepsOnePerCommunity(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.scraper.items["golang"] = []domain.RawContentItem{
		goodItem("aaa", "golang"),
		goodItem("bbb", "golang"),
		goodItem("ccc", "golang"),
		goodItem("ddd", "golang"),
		goodItem("eee", "golang"),
	}

	result, err := f.service.RunTrickleSweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.SweepTrickle, result.Mode)
	assert.Equal(t, 1, result.TotalPersisted())

	calls := f.scraper.fetchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0].opts.Limit, "trickle fetches a small multiple")
}

func TestIngestionService_RunTrickleSweep_DuplicateDoesNotStarve(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))

	items := []domain.RawContentItem{goodItem("aaa", "golang"), goodItem("bbb", "golang")}
	f.scraper.items["golang"] = items

	// First trickle takes the first item.
	first, err := f.service.RunTrickleSweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalPersisted())

	// Second trickle sees the same feed: the duplicate is skipped and
	// the next new item lands.
	second, err := f.service.RunTrickleSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalPersisted())
	assert.Equal(t, 1, second.TotalSkipped())
}

func TestIngestionService_RunAuthenticSweep_AppliesBothGates(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))

	// Quality 0.6 but zero engagement: fails the authenticity gate.
	templated := domain.RawContentItem{
		Platform:    "reddit",
		OriginalID:  "spam",
		Channel:     "golang",
		Title:       "A long templated post",
		Body:        strings.Repeat("x", 2000),
		URL:         "https://reddit.com/r/golang/comments/spam",
		CreatedAt:   time.Now().Add(-time.Hour),
		Score:       500,
		Ups:         0,
		NumComments: 0,
	}
	f.scraper.items["golang"] = []domain.RawContentItem{templated, goodItem("real", "golang")}

	result, err := f.service.RunAuthenticSweep(ctx, "comm-1", 2)
	require.NoError(t, err)

	assert.Equal(t, domain.SweepAuthentic, result.Mode)
	require.Len(t, result.Communities, 1)
	cr := result.Communities[0]
	assert.Equal(t, 1, cr.Persisted)
	assert.Equal(t, 1, cr.FilteredQuality)

	calls := f.scraper.fetchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 10, calls[0].opts.Limit, "authentic mode fetches a multiple of the requested count")
}

func TestIngestionService_RunAuthenticSweep_UnknownCommunity(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.RunAuthenticSweep(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestionService_EnrichmentFailureDoesNotRollBack(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.scraper.items["golang"] = []domain.RawContentItem{goodItem("aaa", "golang")}
	f.enricher.err = errors.New("anthropic API error")
	f.seeder.err = errors.New("store unavailable")

	result, err := f.service.RunBulkSweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalPersisted())
	assert.Empty(t, result.Errors, "enrichment failures are logged, not surfaced")
	assert.Len(t, activeRecords(t, f.contents, "comm-1"), 1)
}

func TestIngestionService_SweepInProgress(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.communities.Save(ctx, testCommunity("comm-1", "golang")))
	f.scraper.blockCh = make(chan struct{})
	f.scraper.started = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.service.RunBulkSweep(ctx)
	}()

	<-f.scraper.started
	_, err := f.service.RunTrickleSweep(ctx)
	assert.ErrorIs(t, err, domain.ErrSweepInProgress)

	close(f.scraper.blockCh)
	wg.Wait()
}

// ==================== Cleanup Tests ====================

func TestIngestionService_Cleanup(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	old := time.Now().Add(-60 * 24 * time.Hour).UTC()
	seedRecord := func(id string, createdAt time.Time, score float64) {
		require.NoError(t, f.contents.Create(ctx, &domain.ContentRecord{
			ID:           id,
			CommunityID:  "comm-1",
			OwnerID:      "u1",
			Platform:     "reddit",
			OriginalID:   "orig-" + id,
			SourceURL:    "https://reddit.com/r/golang/comments/" + id,
			QualityScore: score,
			Status:       domain.StatusActive,
			CreatedAt:    createdAt,
		}))
	}

	seedRecord("stale-low", old, 0.2)
	seedRecord("stale-high", old, 0.9)
	seedRecord("fresh-low", time.Now().UTC(), 0.2)

	result, err := f.service.Cleanup(ctx, domain.CleanupOptions{
		MaxAgeDays: 30,
		MinQuality: 0.4,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.HiddenLowQuality)
	assert.Zero(t, result.HiddenExcess)

	// Running it again hides nothing new.
	again, err := f.service.Cleanup(ctx, domain.CleanupOptions{MaxAgeDays: 30, MinQuality: 0.4})
	require.NoError(t, err)
	assert.Zero(t, again.HiddenLowQuality)
}

func TestIngestionService_Cleanup_PerCommunityCap(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).UTC()
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, f.contents.Create(ctx, &domain.ContentRecord{
			ID:           id,
			CommunityID:  "comm-1",
			OwnerID:      "u1",
			Platform:     "reddit",
			OriginalID:   "orig-" + id,
			SourceURL:    "https://reddit.com/r/golang/comments/" + id,
			QualityScore: 0.9,
			Status:       domain.StatusActive,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	result, err := f.service.Cleanup(ctx, domain.CleanupOptions{MaxPerCommunity: 2})
	require.NoError(t, err)
	assert.Zero(t, result.HiddenLowQuality)
	assert.Equal(t, 3, result.HiddenExcess)

	records := activeRecords(t, f.contents, "comm-1")
	require.Len(t, records, 2)
	ids := []string{records[0].ID, records[1].ID}
	assert.ElementsMatch(t, []string{"d", "e"}, ids, "the most recent records stay active")
}

func TestIngestionService_Cleanup_ZeroOptionsAreNoOps(t *testing.T) {
	f := newIngestFixture(t)

	result, err := f.service.Cleanup(context.Background(), domain.CleanupOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.HiddenLowQuality)
	assert.Zero(t, result.HiddenExcess)
}

// activeRecords lists a community's active records via the store's
// aggregate surface.
func activeRecords(t *testing.T, store *memory.ContentStore, communityID string) []domain.ContentRecord {
	t.Helper()
	ctx := context.Background()

	counts, err := store.CountActiveByCommunity(ctx)
	require.NoError(t, err)
	total := counts[communityID]
	if total == 0 {
		return nil
	}

	// Everything beyond keep=0 is "excess", i.e. all active records,
	// oldest first.
	ids, err := store.ListExcessActive(ctx, communityID, 0)
	require.NoError(t, err)

	records := make([]domain.ContentRecord, 0, len(ids))
	for _, id := range ids {
		record, err := store.Get(ctx, id)
		require.NoError(t, err)
		records = append(records, *record)
	}
	return records
}
