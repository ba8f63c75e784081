package config

import "time"

// Config is the root configuration structure for Tidecast. It contains all
// configuration sections for the simulation engine, framework catalog, run
// storage, retention, telemetry, and the request watcher.
type Config struct {
	// Engine contains simulation engine configuration including iteration
	// bounds and worker-pool sizing.
	Engine EngineConfig `yaml:"engine"`

	// Frameworks contains the policy framework catalog configuration.
	Frameworks FrameworksConfig `yaml:"frameworks"`

	// Store contains run persistence configuration including backend
	// selection and SQLite settings.
	Store StoreConfig `yaml:"store"`

	// Retention contains configuration for pruning old runs.
	Retention RetentionConfig `yaml:"retention"`

	// Telemetry contains observability configuration including logging
	// and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch contains configuration for the request-directory watcher.
	Watch WatchConfig `yaml:"watch"`
}

// EngineConfig contains configuration for the simulation engine.
type EngineConfig struct {
	// DefaultIterations is the per-scenario trial count used when a request
	// does not specify one.
	// Default: 1000
	DefaultIterations int `yaml:"default_iterations"`

	// MaxIterations caps the per-scenario trial count a request may ask for.
	// Default: 100000
	MaxIterations int `yaml:"max_iterations"`

	// Workers is the trial worker-pool width. Zero uses GOMAXPROCS.
	// Default: 0
	Workers int `yaml:"workers"`

	// ProgressInterval is how often run progress is persisted while trials
	// execute.
	// Default: 250ms
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// FrameworksConfig contains configuration for the policy framework catalog.
type FrameworksConfig struct {
	// CatalogPath is an optional YAML catalog of policy frameworks merged
	// over the built-in definitions. Entries with a built-in ID replace the
	// built-in. Empty uses only the built-ins.
	CatalogPath string `yaml:"catalog_path"`
}

// StoreConfig contains configuration for run persistence.
type StoreConfig struct {
	// Backend selects the storage backend.
	// Options: "memory" (no persistence), "sqlite" (file-based)
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings, used when Backend is
	// "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite backend settings.
type SQLiteConfig struct {
	// Path is the SQLite database file path.
	// Default: "data/runs.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// CheckpointInterval is how often the write-ahead log is checkpointed.
	// Default: 5m
	CheckpointInterval time.Duration `yaml:"checkpoint_interval"`
}

// RetentionConfig contains configuration for pruning stored runs.
type RetentionConfig struct {
	// Days is the number of days to retain terminal runs.
	// 0 keeps runs forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRuns caps the total number of stored runs. 0 means unlimited.
	// Default: 0
	MaxRuns int `yaml:"max_runs"`

	// Schedule is a cron expression controlling when pruning executes.
	// Empty disables scheduled pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`
}

// TracingConfig contains distributed tracing settings.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// SampleRatio is the fraction of runs to trace, between 0 and 1.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables transport security on the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure"`
}

// WatchConfig contains configuration for the request-directory watcher.
type WatchConfig struct {
	// Dir is the directory watched for new simulation request files.
	// Default: "requests"
	Dir string `yaml:"dir"`

	// DoneDir is where processed request files are moved. Empty leaves
	// files in place.
	DoneDir string `yaml:"done_dir"`
}
