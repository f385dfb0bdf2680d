package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a file-based implementation of driven.SettingsStore
// using TOML. Settings are stored in commserver.toml within the
// commserver config directory.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store.
// If configDir is empty, defaults to a "commserver" directory under the
// user config directory.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(base, "commserver")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "commserver.toml"),
	}, nil
}

// Load reads settings from the TOML file. Missing files and missing
// keys yield defaults.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Unmarshalling over a pre-filled struct keeps defaults for keys
	// the file does not mention.
	file := fileFromSettings(domain.DefaultSettings())

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return file.toSettings(), nil
		}
		return domain.Settings{}, err
	}

	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Settings{}, err
	}

	return file.toSettings(), nil
}

// Save persists settings to the TOML file.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fileFromSettings(settings))
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// ==================== File Format ====================

// settingsFile mirrors domain.Settings with TOML field names. Task
// intervals are stored as seconds.
type settingsFile struct {
	DataDir    string            `toml:"data_dir,omitempty"`
	Mongo      mongoSection      `toml:"mongo"`
	Redis      redisSection      `toml:"redis"`
	Enrichment enrichmentSection `toml:"enrichment"`
	Ingest     ingestSection     `toml:"ingest"`
	Cleanup    cleanupSection    `toml:"cleanup"`
	Scheduler  schedulerSection  `toml:"scheduler"`
}

type mongoSection struct {
	URI      string `toml:"uri,omitempty"`
	Database string `toml:"database"`
}

type redisSection struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr,omitempty"`
}

type enrichmentSection struct {
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

type ingestSection struct {
	MaxPostsPerSweep          int     `toml:"max_posts_per_sweep"`
	QualityThreshold          float64 `toml:"quality_threshold"`
	AuthenticQualityThreshold float64 `toml:"authentic_quality_threshold"`
}

type cleanupSection struct {
	MaxAgeDays      int     `toml:"max_age_days"`
	MinQuality      float64 `toml:"min_quality"`
	MaxPerCommunity int     `toml:"max_per_community"`
}

type schedulerSection struct {
	Enabled bool                   `toml:"enabled"`
	Tasks   map[string]taskSection `toml:"tasks"`
}

type taskSection struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
}

func fileFromSettings(settings domain.Settings) settingsFile {
	tasks := make(map[string]taskSection, len(settings.Scheduler.TaskConfigs))
	for id, cfg := range settings.Scheduler.TaskConfigs {
		tasks[id] = taskSection{
			Enabled:         cfg.Enabled,
			IntervalSeconds: int(cfg.Interval / time.Second),
		}
	}

	return settingsFile{
		DataDir: settings.DataDir,
		Mongo: mongoSection{
			URI:      settings.Mongo.URI,
			Database: settings.Mongo.Database,
		},
		Redis: redisSection{
			Enabled: settings.Redis.Enabled,
			Addr:    settings.Redis.Addr,
		},
		Enrichment: enrichmentSection{
			Model:     settings.Enrichment.Model,
			MaxTokens: settings.Enrichment.MaxTokens,
		},
		Ingest: ingestSection{
			MaxPostsPerSweep:          settings.Ingest.MaxPostsPerSweep,
			QualityThreshold:          settings.Ingest.QualityThreshold,
			AuthenticQualityThreshold: settings.Ingest.AuthenticQualityThreshold,
		},
		Cleanup: cleanupSection{
			MaxAgeDays:      settings.Cleanup.MaxAgeDays,
			MinQuality:      settings.Cleanup.MinQuality,
			MaxPerCommunity: settings.Cleanup.MaxPerCommunity,
		},
		Scheduler: schedulerSection{
			Enabled: settings.Scheduler.Enabled,
			Tasks:   tasks,
		},
	}
}

func (f settingsFile) toSettings() domain.Settings {
	tasks := make(map[string]domain.TaskConfig, len(f.Scheduler.Tasks))
	for id, cfg := range f.Scheduler.Tasks {
		tasks[id] = domain.TaskConfig{
			Enabled:  cfg.Enabled,
			Interval: time.Duration(cfg.IntervalSeconds) * time.Second,
		}
	}

	return domain.Settings{
		DataDir: f.DataDir,
		Mongo: domain.MongoSettings{
			URI:      f.Mongo.URI,
			Database: f.Mongo.Database,
		},
		Redis: domain.RedisSettings{
			Enabled: f.Redis.Enabled,
			Addr:    f.Redis.Addr,
		},
		Enrichment: domain.EnrichmentSettings{
			Model:     f.Enrichment.Model,
			MaxTokens: f.Enrichment.MaxTokens,
		},
		Ingest: domain.IngestSettings{
			MaxPostsPerSweep:          f.Ingest.MaxPostsPerSweep,
			QualityThreshold:          f.Ingest.QualityThreshold,
			AuthenticQualityThreshold: f.Ingest.AuthenticQualityThreshold,
		},
		Cleanup: domain.CleanupOptions{
			MaxAgeDays:      f.Cleanup.MaxAgeDays,
			MinQuality:      f.Cleanup.MinQuality,
			MaxPerCommunity: f.Cleanup.MaxPerCommunity,
		},
		Scheduler: domain.SchedulerConfig{
			Enabled:     f.Scheduler.Enabled,
			TaskConfigs: tasks,
		},
	}
}
