package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

func resetCleanupFlags() {
	defaults := domain.DefaultCleanupOptions()
	cleanupMaxAgeDays = defaults.MaxAgeDays
	cleanupMinQuality = defaults.MinQuality
	cleanupMaxPerCommunity = defaults.MaxPerCommunity
}

func TestCleanupCmd_Use(t *testing.T) {
	assert.Equal(t, "cleanup", cleanupCmd.Use)
}

func TestCleanupCmd_Short(t *testing.T) {
	assert.Equal(t, "Hide stale and excess published content", cleanupCmd.Short)
}

func TestCleanupCmd_UsesDefaults(t *testing.T) {
	mock, cleanup := setupIngestorTest()
	defer cleanup()
	resetCleanupFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	if assert.Len(t, mock.cleanupCalls, 1) {
		assert.Equal(t, domain.DefaultCleanupOptions(), mock.cleanupCalls[0])
	}
	assert.Contains(t, buf.String(), "Hidden 4 low-quality and 2 excess records.")
}

func TestCleanupCmd_Flags(t *testing.T) {
	mock, cleanup := setupIngestorTest()
	defer cleanup()
	defer resetCleanupFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cleanup", "--max-age-days", "7", "--min-quality", "0.3", "--max-per-community", "20"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	if assert.Len(t, mock.cleanupCalls, 1) {
		assert.Equal(t, domain.CleanupOptions{
			MaxAgeDays:      7,
			MinQuality:      0.3,
			MaxPerCommunity: 20,
		}, mock.cleanupCalls[0])
	}
}

func TestCleanupCmd_ServiceError(t *testing.T) {
	mock, cleanup := setupIngestorTest()
	defer cleanup()
	mock.cleanupErr = errors.New("mongodb unreachable")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup failed")
}

func TestCleanupCmd_ServiceNotConfigured(t *testing.T) {
	old := ingestor
	ingestor = nil
	defer func() {
		ingestor = old
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingestion service not configured")
}
