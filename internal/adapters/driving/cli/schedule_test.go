package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MdHasib01/commserver/internal/core/ports/driving"
)

// mockScheduler implements driving.Scheduler for command testing.
type mockScheduler struct {
	startCalls int
	stopCalls  int
	startErr   error
	stopErr    error
}

var _ driving.Scheduler = (*mockScheduler)(nil)

func (m *mockScheduler) Start(_ context.Context) error {
	m.startCalls++
	return m.startErr
}

func (m *mockScheduler) Stop() error {
	m.stopCalls++
	return m.stopErr
}

func setupScheduleTest() (*mockScheduler, func()) {
	old := scheduler
	mock := &mockScheduler{}
	scheduler = mock
	return mock, func() {
		scheduler = old
	}
}

func TestScheduleCmd_Use(t *testing.T) {
	assert.Equal(t, "schedule", scheduleCmd.Use)
}

func TestScheduleCmd_Short(t *testing.T) {
	assert.Equal(t, "Run scheduled sweeps until interrupted", scheduleCmd.Short)
}

func TestScheduleCmd_RunsAndStops(t *testing.T) {
	mock, cleanup := setupScheduleTest()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"schedule"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 1, mock.startCalls)
	assert.Equal(t, 1, mock.stopCalls)
	assert.Contains(t, buf.String(), "Scheduler running.")
	assert.Contains(t, buf.String(), "Shutting down...")
}

func TestScheduleCmd_CancelledContextIsCleanShutdown(t *testing.T) {
	mock, cleanup := setupScheduleTest()
	defer cleanup()
	mock.startErr = context.Canceled

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"schedule"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 1, mock.stopCalls)
	assert.Contains(t, buf.String(), "Shutting down...")
}

func TestScheduleCmd_StartError(t *testing.T) {
	mock, cleanup := setupScheduleTest()
	defer cleanup()
	mock.startErr = errors.New("scheduler store unavailable")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"schedule"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler failed")
	assert.Zero(t, mock.stopCalls)
}

func TestScheduleCmd_StopError(t *testing.T) {
	mock, cleanup := setupScheduleTest()
	defer cleanup()
	mock.stopErr = errors.New("tasks did not drain")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"schedule"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stopping scheduler")
}

func TestScheduleCmd_ServiceNotConfigured(t *testing.T) {
	old := scheduler
	scheduler = nil
	defer func() {
		scheduler = old
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"schedule"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler not configured")
}
