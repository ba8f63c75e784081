package runstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"coralline-hq/tidecast/pkg/montecarlo"
)

// RetentionConfig contains configuration for the retention pruner.
type RetentionConfig struct {
	// RetentionDays is the number of days to retain terminal runs.
	// 0 means keep runs forever (no age-based pruning).
	RetentionDays int

	// MaxRuns is the maximum number of stored runs.
	// 0 means unlimited.
	MaxRuns int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string
}

// DefaultRetentionConfig returns the default retention configuration.
func DefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		RetentionDays: 30,
		MaxRuns:       0,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention policies on stored simulation runs.
// Only terminal runs (completed, failed, cancelled) are ever deleted;
// pending and running runs are never touched.
type Pruner struct {
	store  montecarlo.Store
	config *RetentionConfig
	logger *slog.Logger
}

// NewPruner creates a retention pruner over the given store.
func NewPruner(store montecarlo.Store, config *RetentionConfig) *Pruner {
	if config == nil {
		config = DefaultRetentionConfig()
	}
	return &Pruner{
		store:  store,
		config: config,
		logger: slog.Default().With("component", "runstore.retention"),
	}
}

// Prune deletes runs older than the retention period or exceeding the
// run-count cap.
//
// Pruning happens in two phases:
//  1. Age-based: delete terminal runs not updated within retention_days
//  2. Count-based: if stored runs > max_runs, delete oldest terminal runs
//
// Returns the total number of runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	var totalDeleted int

	if p.config.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.store.Cleanup(ctx, cutoff)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned runs by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxRuns > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted == 0 {
		p.logger.Debug("no runs pruned",
			"retention_days", p.config.RetentionDays,
			"max_runs", p.config.MaxRuns,
		)
	} else {
		p.logger.Info("run pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_runs", p.config.MaxRuns,
		)
	}

	return totalDeleted, nil
}

// pruneByCount deletes the oldest terminal runs when the store holds more
// runs than the configured cap.
func (p *Pruner) pruneByCount(ctx context.Context) (int, error) {
	runs, err := p.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list runs: %w", err)
	}

	excess := len(runs) - p.config.MaxRuns
	if excess <= 0 {
		p.logger.Debug("run count within limit",
			"current", len(runs),
			"max", p.config.MaxRuns,
		)
		return 0, nil
	}

	terminal := make([]*montecarlo.Run, 0, len(runs))
	for _, run := range runs {
		if run.Status.Terminal() {
			terminal = append(terminal, run)
		}
	}
	sort.Slice(terminal, func(i, j int) bool {
		return terminal[i].CreatedAt.Before(terminal[j].CreatedAt)
	})

	if excess > len(terminal) {
		excess = len(terminal)
	}

	deleted := 0
	for _, run := range terminal[:excess] {
		if err := p.store.Delete(ctx, run.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete run %s: %w", run.ID, err)
		}
		deleted++
	}

	p.logger.Info("pruned runs by count",
		"deleted_count", deleted,
		"max_runs", p.config.MaxRuns,
	)
	return deleted, nil
}

// Scheduler runs the pruner at scheduled intervals using cron syntax.
type Scheduler struct {
	pruner  *Pruner
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a retention scheduler for the given pruner.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{
		pruner: pruner,
		cron:   cron.New(),
		logger: slog.Default().With("component", "runstore.scheduler"),
	}
}

// Start begins scheduled pruning using the pruner's cron expression.
// If PruneSchedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := s.pruner.config.PruneSchedule
	if schedule == "" {
		s.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runPruning(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("retention scheduler started",
		"schedule", schedule,
		"retention_days", s.pruner.config.RetentionDays,
		"max_runs", s.pruner.config.MaxRuns,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runPruning executes a pruning cycle.
func (s *Scheduler) runPruning(ctx context.Context) {
	s.logger.Info("starting scheduled run pruning")

	deleted, err := s.pruner.Prune(ctx)
	if err != nil {
		s.logger.Error("scheduled pruning failed",
			"error", err,
		)
		return
	}

	if deleted > 0 {
		s.logger.Info("scheduled pruning completed",
			"deleted_count", deleted,
		)
	} else {
		s.logger.Debug("scheduled pruning completed, no runs deleted")
	}
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("retention scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled pruning time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
