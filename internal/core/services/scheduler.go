package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
	"github.com/MdHasib01/commserver/internal/core/ports/driving"
	"github.com/MdHasib01/commserver/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

const (
	// schedulerTick is how often the scheduler looks for due tasks.
	schedulerTick = 1 * time.Minute

	// historyKeep bounds retained task results per task.
	historyKeep = 100
)

// Scheduler runs recurring sweeps and cleanup on their configured
// intervals. Task state and run history live in the scheduler store so
// cadence survives restarts.
type Scheduler struct {
	config   domain.SchedulerConfig
	cleanup  domain.CleanupOptions
	store    driven.SchedulerStore
	ingestor driving.Ingestor

	mu      sync.Mutex
	running bool
	active  map[string]bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler driving the given ingestor.
func NewScheduler(
	config domain.SchedulerConfig,
	cleanup domain.CleanupOptions,
	store driven.SchedulerStore,
	ingestor driving.Ingestor,
) *Scheduler {
	return &Scheduler{
		config:   config,
		cleanup:  cleanup,
		store:    store,
		ingestor: ingestor,
		active:   make(map[string]bool),
	}
}

// Start begins the scheduler loop. This method blocks until the context
// is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Error("Scheduler task initialisation failed: %v", err)
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler and waits for in-flight
// tasks.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// initialiseTasks ensures all configured tasks exist in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	tasks := []struct {
		id   string
		name string
	}{
		{domain.TaskIDBulkSweep, "Bulk Sweep"},
		{domain.TaskIDTrickleSweep, "Trickle Sweep"},
		{domain.TaskIDCleanup, "Cleanup"},
	}

	for _, t := range tasks {
		cfg := s.config.GetTaskConfig(t.id)
		if cfg.Interval == 0 {
			continue
		}
		if err := s.ensureTask(ctx, t.id, t.name, cfg); err != nil {
			return err
		}
	}
	return nil
}

// ensureTask creates or updates a task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  time.Now().Add(cfg.Interval),
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = time.Now().Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context) error {
	// Check for due tasks immediately on startup
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(schedulerTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Error("Scheduler could not list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if !task.Enabled {
			continue
		}
		if task.NextRun.IsZero() || !task.NextRun.After(now) {
			s.runTask(ctx, task)
		}
	}
}

// runTask executes a single task in the background. A task never
// overlaps itself: while one execution is in flight, due checks skip it.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.mu.Lock()
	if s.active[task.ID] {
		s.mu.Unlock()
		return
	}
	s.active[task.ID] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.active, task.ID)
			s.mu.Unlock()
		}()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		items, err := s.execute(ctx, task.ID)
		result.EndedAt = time.Now()
		result.ItemsProcessed = items

		// Another sweep holding the ingestion lock is not a failure;
		// the task just waits for its next slot.
		if errors.Is(err, domain.ErrSweepInProgress) {
			logger.Info("Skipping %s: another sweep is running", task.ID)
			task.NextRun = result.EndedAt.Add(task.Interval)
			if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
				logger.Error("Could not save task %s: %v", task.ID, saveErr)
			}
			return
		}

		if err != nil {
			result.Success = false
			result.Error = err.Error()
			task.LastError = err.Error()
			logger.Error("Task %s failed: %v", task.ID, err)
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Error("Could not save task %s: %v", task.ID, saveErr)
		}
		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Error("Could not record result for %s: %v", task.ID, recordErr)
		}
		if pruneErr := s.store.PruneHistory(ctx, historyKeep); pruneErr != nil {
			logger.Error("Could not prune task history: %v", pruneErr)
		}
	}()
}

// execute dispatches a task ID to its operation and returns an item
// count for the run history.
func (s *Scheduler) execute(ctx context.Context, taskID string) (int, error) {
	switch taskID {
	case domain.TaskIDBulkSweep:
		result, err := s.ingestor.RunBulkSweep(ctx)
		if err != nil {
			return 0, err
		}
		return result.TotalPersisted(), nil

	case domain.TaskIDTrickleSweep:
		result, err := s.ingestor.RunTrickleSweep(ctx)
		if err != nil {
			return 0, err
		}
		return result.TotalPersisted(), nil

	case domain.TaskIDCleanup:
		result, err := s.ingestor.Cleanup(ctx, s.cleanup)
		if err != nil {
			return 0, err
		}
		return result.HiddenLowQuality + result.HiddenExcess, nil

	default:
		logger.Warn("Unknown scheduled task: %s", taskID)
		return 0, nil
	}
}
