package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains configuration for the request watcher.
type Config struct {
	// Dir is the directory watched for new request files.
	Dir string

	// DoneDir is where processed files are moved. Empty leaves files in
	// place.
	DoneDir string

	// SettleInterval is how long a file must stay quiet before it is
	// submitted. Writers that stream a file in chunks emit several events;
	// submitting on the first one would read a partial file.
	// Default: 200ms
	SettleInterval time.Duration
}

// Watcher watches a directory for new simulation request files and submits
// each one exactly once after its writes settle.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	config  Config

	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a request watcher for the configured directory.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory cannot be empty")
	}
	if cfg.SettleInterval <= 0 {
		cfg.SettleInterval = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher: fsw,
		logger:  logger.With("component", "watch"),
		config:  cfg,
		pending: make(map[string]*time.Timer),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Watch blocks processing file events until the context is cancelled or
// Stop is called. Each settled request file is passed to submit; submit
// errors are logged and the file is left in place for inspection.
func (w *Watcher) Watch(ctx context.Context, submit func(path string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		for _, timer := range w.pending {
			timer.Stop()
		}
		w.pending = make(map[string]*time.Timer)
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.watcher.Add(w.config.Dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.config.Dir, err)
	}

	w.logger.Info("request watcher started",
		"dir", w.config.Dir,
		"settle_ms", w.config.SettleInterval.Milliseconds(),
	)

	// Pick up files that were already there before the watch began.
	w.scanExisting(submit)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("request watcher stopped")
			return nil

		case <-w.stopCh:
			w.logger.Info("request watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isRequestEvent(event) {
				continue
			}
			w.logger.Debug("request file event", "path", event.Name, "op", event.Op.String())
			w.schedule(event.Name, submit)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			// Keep watching despite transient errors.
			w.logger.Error("request watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// scanExisting submits request files already present in the directory.
func (w *Watcher) scanExisting(submit func(path string) error) {
	entries, err := os.ReadDir(w.config.Dir)
	if err != nil {
		w.logger.Error("failed to scan watch directory", "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.config.Dir, entry.Name())
		if !isRequestFile(path) {
			continue
		}
		w.schedule(path, submit)
	}
}

// schedule arms (or re-arms) the settle timer for one file. The submit runs
// only after the file has been quiet for the settle interval.
func (w *Watcher) schedule(path string, submit func(path string) error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.config.SettleInterval, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.process(path, submit)
	})
}

// process submits one settled request file and moves it aside on success.
func (w *Watcher) process(path string, submit func(path string) error) {
	if _, err := os.Stat(path); err != nil {
		// Deleted or renamed while settling.
		return
	}

	w.logger.Info("submitting request file", "path", path)
	if err := submit(path); err != nil {
		w.logger.Error("request submission failed", "path", path, "error", err)
		return
	}

	if w.config.DoneDir == "" {
		return
	}
	if err := os.MkdirAll(w.config.DoneDir, 0o755); err != nil {
		w.logger.Error("failed to create done directory", "error", err)
		return
	}
	dest := filepath.Join(w.config.DoneDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		w.logger.Error("failed to move processed file", "path", path, "error", err)
	}
}

// isRequestEvent reports whether a filesystem event describes a request
// file landing in the watch directory.
func isRequestEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	return isRequestFile(event.Name)
}

// isRequestFile reports whether the path looks like a request file: a
// non-hidden YAML file.
func isRequestFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
