// Command commserver is the community content ingestion engine. It
// wires the CLI to the MongoDB stores, the Reddit scraper and the
// enrichment adapters. Wiring is lazy: backends connect when the first
// command that needs them runs, so version and help never touch a
// database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	rediscache "github.com/MdHasib01/commserver/internal/adapters/driven/cache/redis"
	"github.com/MdHasib01/commserver/internal/adapters/driven/config/file"
	"github.com/MdHasib01/commserver/internal/adapters/driven/credentials"
	"github.com/MdHasib01/commserver/internal/adapters/driven/enrichment"
	"github.com/MdHasib01/commserver/internal/adapters/driven/enrichment/anthropic"
	"github.com/MdHasib01/commserver/internal/adapters/driven/storage/mongo"
	"github.com/MdHasib01/commserver/internal/adapters/driven/storage/sqlite"
	"github.com/MdHasib01/commserver/internal/adapters/driving/cli"
	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/core/services"
	"github.com/MdHasib01/commserver/internal/logger"
	"github.com/MdHasib01/commserver/internal/quality"
	"github.com/MdHasib01/commserver/internal/scrapers/reddit"
	"github.com/MdHasib01/commserver/internal/transform"
)

// connectTimeout bounds backend connection attempts during wiring.
const connectTimeout = 15 * time.Second

// Backends opened by the wiring functions, closed on exit.
var (
	settingsStore *file.SettingsStore
	mongoStore    *mongo.Store
	seenCache     *rediscache.SeenCache
	localStore    *sqlite.Store
)

var servicesReady bool

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cli.SetSettingsSetup(initSettings)
	cli.SetSetup(initServices)

	err := cli.Execute()
	closeBackends()
	if err != nil {
		os.Exit(1)
	}
}

// initSettings opens the settings store. Runs before the first command
// that reads settings.
func initSettings() error {
	if settingsStore != nil {
		return nil
	}

	store, err := file.NewSettingsStore(cli.ConfigDir())
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	settingsStore = store
	cli.SetSettingsStore(store)
	return nil
}

// initServices wires the full stack: stores, scraper, enrichment and
// the orchestrators. Runs before the first command that sweeps.
func initServices() error {
	if servicesReady {
		return nil
	}
	if err := initSettings(); err != nil {
		return err
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	creds := credentials.FromEnv()
	creds.ApplyOverrides(&settings)

	if settings.Mongo.URI == "" {
		return errors.New("mongo URI not configured: set MONGODB_URI or [mongo] uri in commserver.toml")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	mongoStore, err = mongo.Connect(ctx, settings.Mongo)
	if err != nil {
		return err
	}

	if settings.Redis.Enabled {
		if settings.Redis.Addr == "" {
			return errors.New("redis enabled but no address configured: set REDIS_URL or [redis] addr in commserver.toml")
		}
		seenCache, err = rediscache.NewSeenCache(ctx, settings.Redis.Addr)
		if err != nil {
			return err
		}
	}

	localStore, err = sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening scheduler store: %w", err)
	}

	contents := mongoStore.ContentStore()
	communities := mongoStore.CommunityStore()
	users := mongoStore.UserStore()
	comments := mongoStore.CommentStore()

	rnd := domain.NewRand()

	registry := services.NewScraperRegistry()
	if !creds.HasReddit() {
		logger.Warn("Reddit credentials incomplete, reddit sources will fail until the REDDIT_* variables are set")
	}
	broker := reddit.NewTokenBroker(reddit.Credentials{
		ClientID:     creds.RedditClientID,
		ClientSecret: creds.RedditClientSecret,
		RefreshToken: creds.RedditRefreshToken,
		UserAgent:    creds.RedditUserAgent,
	})
	registry.Register(reddit.NewClient(broker))

	var enricher driven.CommentEnricher
	if creds.HasAnthropic() {
		e, err := anthropic.NewEnricher(anthropic.Config{
			APIKey:    creds.AnthropicAPIKey,
			Model:     settings.Enrichment.Model,
			MaxTokens: settings.Enrichment.MaxTokens,
		}, comments, contents, rnd)
		if err != nil {
			return fmt.Errorf("configuring comment enricher: %w", err)
		}
		enricher = e
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, comment generation disabled")
	}

	// Assign through a separate variable so a disabled cache stays a
	// true nil interface.
	var cache driven.SeenCache
	if seenCache != nil {
		cache = seenCache
	}

	ingestor := services.NewIngestionService(
		communities,
		contents,
		users,
		registry,
		services.NewDeduplicator(contents, cache),
		transform.New(rnd),
		quality.NewScorer(),
		quality.NewValidator(),
		enricher,
		enrichment.NewLikeSeeder(contents, rnd),
		rnd,
		settings.Ingest,
	)
	scheduler := services.NewScheduler(settings.Scheduler, settings.Cleanup, localStore.SchedulerStore(), ingestor)

	cli.SetIngestor(ingestor)
	cli.SetScheduler(scheduler)

	servicesReady = true
	return nil
}

// closeBackends releases whatever the wiring functions opened.
func closeBackends() {
	if seenCache != nil {
		if err := seenCache.Close(); err != nil {
			logger.Error("Closing redis: %v", err)
		}
	}
	if localStore != nil {
		if err := localStore.Close(); err != nil {
			logger.Error("Closing scheduler store: %v", err)
		}
	}
	if mongoStore != nil {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := mongoStore.Close(ctx); err != nil {
			logger.Error("Closing mongodb: %v", err)
		}
	}
}
