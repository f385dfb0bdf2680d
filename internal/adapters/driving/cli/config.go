package cli

import (
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage engine settings",
	Long: `View and initialise the commserver settings file.

Settings live in commserver.toml under the config directory. Upstream
credentials are never stored there: they come from the environment.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the settings file",
	Long: `Writes commserver.toml with the currently effective values so there
is a complete file to edit.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := setupSettings(); err != nil {
		return err
	}
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	printSettings(cmd, settings)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if err := setupSettings(); err != nil {
		return err
	}
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Println("Settings file written.")
	return nil
}

func printSettings(cmd *cobra.Command, settings domain.Settings) {
	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Mongo]")
	if settings.Mongo.URI != "" {
		cmd.Printf("  URI: %s\n", redactURI(settings.Mongo.URI))
	} else {
		cmd.Printf("  URI: (not set)\n")
	}
	cmd.Printf("  Database: %s\n", settings.Mongo.Database)
	cmd.Println()

	cmd.Println("[Redis]")
	if settings.Redis.Enabled {
		cmd.Printf("  Enabled: yes\n")
		if settings.Redis.Addr != "" {
			cmd.Printf("  Addr: %s\n", settings.Redis.Addr)
		} else {
			cmd.Printf("  Addr: (not set)\n")
		}
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[Enrichment]")
	cmd.Printf("  Model: %s\n", settings.Enrichment.Model)
	cmd.Printf("  Max tokens: %d\n", settings.Enrichment.MaxTokens)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Max posts per sweep: %d\n", settings.Ingest.MaxPostsPerSweep)
	cmd.Printf("  Quality threshold: %.2f\n", settings.Ingest.QualityThreshold)
	cmd.Printf("  Authentic quality threshold: %.2f\n", settings.Ingest.AuthenticQualityThreshold)
	cmd.Println()

	cmd.Println("[Cleanup]")
	cmd.Printf("  Max age days: %d\n", settings.Cleanup.MaxAgeDays)
	cmd.Printf("  Min quality: %.2f\n", settings.Cleanup.MinQuality)
	cmd.Printf("  Max per community: %d\n", settings.Cleanup.MaxPerCommunity)
	cmd.Println()

	cmd.Println("[Scheduler]")
	if settings.Scheduler.Enabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	ids := make([]string, 0, len(settings.Scheduler.TaskConfigs))
	for id := range settings.Scheduler.TaskConfigs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cfg := settings.Scheduler.TaskConfigs[id]
		state := ""
		if !cfg.Enabled {
			state = " (disabled)"
		}
		cmd.Printf("  %s: every %s%s\n", id, cfg.Interval, state)
	}
}

// redactURI masks any password embedded in a connection URI.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return u.Redacted()
}
