package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

var (
	cleanupMaxAgeDays      int
	cleanupMinQuality      float64
	cleanupMaxPerCommunity int
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Hide stale and excess published content",
	Long: `Runs a maintenance pass over published content: low-quality records
older than the age limit are hidden, then each community is capped to
its most recent active records.

Setting an option to 0 disables that rule.`,
	RunE: runCleanup,
}

func init() {
	defaults := domain.DefaultCleanupOptions()
	cleanupCmd.Flags().IntVar(&cleanupMaxAgeDays, "max-age-days", defaults.MaxAgeDays, "hide low-quality records older than this many days")
	cleanupCmd.Flags().Float64Var(&cleanupMinQuality, "min-quality", defaults.MinQuality, "quality floor for the age rule")
	cleanupCmd.Flags().IntVar(&cleanupMaxPerCommunity, "max-per-community", defaults.MaxPerCommunity, "active records kept per community")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	if err := setup(); err != nil {
		return err
	}
	if ingestor == nil {
		return errors.New("ingestion service not configured")
	}

	result, err := ingestor.Cleanup(context.Background(), domain.CleanupOptions{
		MaxAgeDays:      cleanupMaxAgeDays,
		MinQuality:      cleanupMinQuality,
		MaxPerCommunity: cleanupMaxPerCommunity,
	})
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	cmd.Printf("Hidden %d low-quality and %d excess records.\n",
		result.HiddenLowQuality, result.HiddenExcess)
	return nil
}
