package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"coralline-hq/tidecast/pkg/montecarlo"
)

// SQLiteStore implements montecarlo.Store using SQLite, so run status and
// results survive process restarts. Suitable for single-instance
// deployments.
//
// The store uses a write-ahead log for concurrent read performance and
// periodic checkpointing to bound WAL growth.
type SQLiteStore struct {
	db                 *sql.DB
	dbPath             string
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	saveStmt    *sql.Stmt
	loadStmt    *sql.Stmt
	listStmt    *sql.Stmt
	deleteStmt  *sql.Stmt
	cleanupStmt *sql.Stmt
}

var _ montecarlo.Store = (*SQLiteStore)(nil)

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore creates a SQLite run store with default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteConfig{DBPath: dbPath})
}

// NewSQLiteStoreWithConfig creates a SQLite run store with custom settings.
func NewSQLiteStoreWithConfig(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:                 db,
		dbPath:             cfg.DBPath,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	go store.checkpointLoop()

	return store, nil
}

// initSchema creates the runs table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		framework_id TEXT NOT NULL,
		status TEXT NOT NULL,
		stage TEXT NOT NULL,
		progress REAL NOT NULL,
		payload TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_status ON simulation_runs(status);
	CREATE INDEX IF NOT EXISTS idx_runs_updated ON simulation_runs(updated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.saveStmt, err = s.db.Prepare(`
		INSERT INTO simulation_runs (id, framework_id, status, stage, progress, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			stage = excluded.stage,
			progress = excluded.progress,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare save statement: %w", err)
	}

	s.loadStmt, err = s.db.Prepare(`
		SELECT payload FROM simulation_runs WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare load statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT payload FROM simulation_runs ORDER BY created_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.deleteStmt, err = s.db.Prepare(`
		DELETE FROM simulation_runs WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	s.cleanupStmt, err = s.db.Prepare(`
		DELETE FROM simulation_runs
		WHERE updated_at < ? AND status IN (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cleanup statement: %w", err)
	}

	return nil
}

// Save persists the run, replacing any existing record.
func (s *SQLiteStore) Save(ctx context.Context, run *montecarlo.Run) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.saveStmt.ExecContext(ctx,
		run.ID,
		run.FrameworkID,
		string(run.Status),
		string(run.Stage),
		run.Progress,
		string(payload),
		run.CreatedAt.Unix(),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load returns the run with the given ID, or nil when absent.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*montecarlo.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.loadStmt.QueryRowContext(ctx, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var run montecarlo.Run
	if err := json.Unmarshal([]byte(payload), &run); err != nil {
		return nil, fmt.Errorf("failed to deserialize run %q: %w", id, err)
	}
	return &run, nil
}

// List returns all persisted runs in creation order.
func (s *SQLiteStore) List(ctx context.Context) ([]*montecarlo.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*montecarlo.Run
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var run montecarlo.Run
		if err := json.Unmarshal([]byte(payload), &run); err != nil {
			return nil, fmt.Errorf("failed to deserialize run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return runs, nil
}

// Delete removes a run. No-op when absent.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deleteStmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// Cleanup removes terminal runs not updated since the cutoff.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.cleanupStmt.ExecContext(ctx, olderThan.Unix(),
		string(montecarlo.StatusCompleted),
		string(montecarlo.StatusFailed),
		string(montecarlo.StatusCancelled),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(deleted), nil
}

// Close releases database resources. Close is idempotent.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		for _, stmt := range []*sql.Stmt{s.saveStmt, s.loadStmt, s.listStmt, s.deleteStmt, s.cleanupStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteStore) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}
