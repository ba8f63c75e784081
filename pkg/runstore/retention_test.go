package runstore

import (
	"context"
	"testing"
	"time"

	"coralline-hq/tidecast/pkg/montecarlo"
)

func TestPrunerAgeBased(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	old := testRun("old", montecarlo.StatusCompleted)
	if err := store.Save(ctx, old); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Backdate the entry so it falls outside the retention window.
	store.mu.Lock()
	store.updated["old"] = time.Now().AddDate(0, 0, -60)
	store.mu.Unlock()

	if err := store.Save(ctx, testRun("recent", montecarlo.StatusCompleted)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pruner := NewPruner(store, &RetentionConfig{RetentionDays: 30})
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune deleted %d runs, want 1", deleted)
	}

	if run, _ := store.Load(ctx, "old"); run != nil {
		t.Error("old run survived age-based pruning")
	}
	if run, _ := store.Load(ctx, "recent"); run == nil {
		t.Error("recent run was pruned")
	}
}

func TestPrunerCountBased(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c", "d"} {
		run := testRun(id, montecarlo.StatusCompleted)
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Save(ctx, run); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	pruner := NewPruner(store, &RetentionConfig{MaxRuns: 2})
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune deleted %d runs, want 2", deleted)
	}

	// The two oldest terminal runs go first.
	for _, id := range []string{"a", "b"} {
		if run, _ := store.Load(ctx, id); run != nil {
			t.Errorf("run %s survived count-based pruning", id)
		}
	}
	for _, id := range []string{"c", "d"} {
		if run, _ := store.Load(ctx, id); run == nil {
			t.Errorf("run %s was pruned", id)
		}
	}
}

func TestPrunerCountBasedSkipsActive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	active := testRun("active", montecarlo.StatusRunning)
	active.CreatedAt = base
	if err := store.Save(ctx, active); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	done := testRun("done", montecarlo.StatusCompleted)
	done.CreatedAt = base.Add(time.Minute)
	if err := store.Save(ctx, done); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pruner := NewPruner(store, &RetentionConfig{MaxRuns: 1})
	if _, err := pruner.Prune(ctx); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	// The running run is older but must never be deleted.
	if run, _ := store.Load(ctx, "active"); run == nil {
		t.Error("running run was pruned")
	}
	if run, _ := store.Load(ctx, "done"); run != nil {
		t.Error("terminal run survived when over the cap")
	}
}

func TestPrunerNoConfigNoDeletes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, testRun("run-1", montecarlo.StatusCompleted)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pruner := NewPruner(store, &RetentionConfig{})
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune deleted %d runs with zero config, want 0", deleted)
	}
}

func TestSchedulerEmptySchedule(t *testing.T) {
	pruner := NewPruner(NewMemoryStore(), &RetentionConfig{})
	scheduler := NewScheduler(pruner)

	if err := scheduler.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if scheduler.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}

func TestSchedulerInvalidSchedule(t *testing.T) {
	pruner := NewPruner(NewMemoryStore(), &RetentionConfig{PruneSchedule: "not a cron"})
	scheduler := NewScheduler(pruner)

	if err := scheduler.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	pruner := NewPruner(NewMemoryStore(), &RetentionConfig{
		RetentionDays: 30,
		PruneSchedule: "0 3 * * *",
	})
	scheduler := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !scheduler.IsRunning() {
		t.Error("scheduler not running after Start")
	}
	if scheduler.NextRun() == nil {
		t.Error("NextRun returned nil for a scheduled job")
	}

	scheduler.Stop()
	if scheduler.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}
