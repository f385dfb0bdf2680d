// Package cli wires the cobra command tree for the commserver binary.
// Services are injected by the entrypoint before Execute runs; commands
// guard against missing services so the tree stays testable in
// isolation.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/core/ports/driving"
	"github.com/MdHasib01/commserver/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// Services injected by the entrypoint.
var (
	ingestor      driving.Ingestor
	scheduler     driving.Scheduler
	settingsStore driven.SettingsStore
)

// Wiring functions registered by the entrypoint. They run before the
// first command that needs services, so version and help never touch a
// backend.
var (
	setupServicesFn func() error
	setupSettingsFn func() error
)

// Global flags.
var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "commserver",
	Short: "Community content ingestion engine",
	Long: `commserver ingests posts from upstream platforms into communities,
republishing them as platform posts owned by synthetic users and
enriching them with generated comments and seeded likes.

Sweeps run on demand (scrape, cleanup) or continuously (schedule).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ConfigDir returns the --config flag value. Empty means the default
// user config directory.
func ConfigDir() string {
	return configDir
}

// SetIngestor injects the ingestion orchestrator.
func SetIngestor(i driving.Ingestor) {
	ingestor = i
}

// SetScheduler injects the sweep scheduler.
func SetScheduler(s driving.Scheduler) {
	scheduler = s
}

// SetSettingsStore injects the settings store.
func SetSettingsStore(s driven.SettingsStore) {
	settingsStore = s
}

// SetSetup registers the wiring function for the full service stack.
func SetSetup(fn func() error) {
	setupServicesFn = fn
}

// SetSettingsSetup registers the lighter wiring function for commands
// that only read settings.
func SetSettingsSetup(fn func() error) {
	setupSettingsFn = fn
}

func setup() error {
	if setupServicesFn == nil {
		return nil
	}
	return setupServicesFn()
}

func setupSettings() error {
	if setupSettingsFn == nil {
		return nil
	}
	return setupSettingsFn()
}
