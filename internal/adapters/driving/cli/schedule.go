package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run scheduled sweeps until interrupted",
	Long: `Runs the background scheduler in the foreground. Bulk sweeps, trickle
sweeps and cleanup run on their configured intervals until the process
receives SIGINT or SIGTERM.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if err := setup(); err != nil {
		return err
	}
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")

	if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler failed: %w", err)
	}

	cmd.Println("Shutting down...")
	if err := scheduler.Stop(); err != nil {
		return fmt.Errorf("stopping scheduler: %w", err)
	}
	return nil
}
