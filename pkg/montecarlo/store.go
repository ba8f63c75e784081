package montecarlo

import (
	"context"
	"time"
)

// Store persists simulation runs for status polling independent of the
// engine's lifetime. Implementations must be safe for concurrent use and
// must hand out snapshots: a Run returned by Load is never aliased to the
// engine's working copy, so readers cannot observe torn writes.
type Store interface {
	// Save persists the run, replacing any existing record with the same ID.
	Save(ctx context.Context, run *Run) error

	// Load returns the run with the given ID, or nil when absent.
	Load(ctx context.Context, id string) (*Run, error)

	// List returns all persisted runs.
	List(ctx context.Context) ([]*Run, error)

	// Delete removes a run. No-op when absent.
	Delete(ctx context.Context, id string) error

	// Cleanup removes terminal runs not updated since the cutoff and
	// returns the number deleted. Non-terminal runs are never cleaned.
	Cleanup(ctx context.Context, olderThan time.Time) (int, error)

	// Close releases resources held by the store.
	Close() error
}
