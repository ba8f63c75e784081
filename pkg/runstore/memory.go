package runstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"coralline-hq/tidecast/pkg/montecarlo"
)

// MemoryStore implements montecarlo.Store using in-process storage. All data
// is lost when the process exits.
//
// Runs are stored serialized; Save and Load copy through JSON so callers and
// pollers never share a mutable record.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[string]*memoryEntry
	updated map[string]time.Time
}

type memoryEntry struct {
	payload  []byte
	terminal bool
}

var _ montecarlo.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-process run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]*memoryEntry),
		updated: make(map[string]time.Time),
	}
}

// Save persists a snapshot of the run.
func (m *MemoryStore) Save(ctx context.Context, run *montecarlo.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.ID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = &memoryEntry{payload: payload, terminal: run.Status.Terminal()}
	m.updated[run.ID] = time.Now()
	return nil
}

// Load returns a fresh copy of the run, or nil when absent.
func (m *MemoryStore) Load(ctx context.Context, id string) (*montecarlo.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	m.mu.RLock()
	entry, ok := m.runs[id]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	var run montecarlo.Run
	if err := json.Unmarshal(entry.payload, &run); err != nil {
		return nil, fmt.Errorf("failed to deserialize run %q: %w", id, err)
	}
	return &run, nil
}

// List returns fresh copies of all stored runs.
func (m *MemoryStore) List(ctx context.Context) ([]*montecarlo.Run, error) {
	m.mu.RLock()
	payloads := make([][]byte, 0, len(m.runs))
	for _, entry := range m.runs {
		payloads = append(payloads, entry.payload)
	}
	m.mu.RUnlock()

	runs := make([]*montecarlo.Run, 0, len(payloads))
	for _, payload := range payloads {
		var run montecarlo.Run
		if err := json.Unmarshal(payload, &run); err != nil {
			return nil, fmt.Errorf("failed to deserialize run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, nil
}

// Delete removes a run. No-op when absent.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.runs, id)
	delete(m.updated, id)
	return nil
}

// Cleanup removes terminal runs not updated since the cutoff.
func (m *MemoryStore) Cleanup(ctx context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for id, entry := range m.runs {
		if entry.terminal && m.updated[id].Before(olderThan) {
			delete(m.runs, id)
			delete(m.updated, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close releases no resources for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// Size returns the number of stored runs. Useful for monitoring and tests.
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}
