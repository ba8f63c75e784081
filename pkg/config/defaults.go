package config

import "time"

// Default values for configuration fields.
const (
	// Engine defaults
	DefaultEngineIterations    = 1000
	DefaultEngineMaxIterations = 100000
	DefaultProgressInterval    = 250 * time.Millisecond

	// Store defaults
	DefaultStoreBackend          = "memory"
	DefaultSQLitePath            = "data/runs.db"
	DefaultSQLiteBusyTimeout     = 5 * time.Second
	DefaultSQLiteCheckpointEvery = 5 * time.Minute

	// Retention defaults
	DefaultRetentionDays     = 30
	DefaultRetentionSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultTracingSampleRatio = 1.0

	// Watch defaults
	DefaultWatchDir = "requests"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Engine defaults
	if cfg.Engine.DefaultIterations == 0 {
		cfg.Engine.DefaultIterations = DefaultEngineIterations
	}
	if cfg.Engine.MaxIterations == 0 {
		cfg.Engine.MaxIterations = DefaultEngineMaxIterations
	}
	if cfg.Engine.ProgressInterval == 0 {
		cfg.Engine.ProgressInterval = DefaultProgressInterval
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Store.SQLite.BusyTimeout == 0 {
		cfg.Store.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Store.SQLite.CheckpointInterval == 0 {
		cfg.Store.SQLite.CheckpointInterval = DefaultSQLiteCheckpointEvery
	}

	// Retention defaults
	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = DefaultRetentionDays
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}

	// Watch defaults
	if cfg.Watch.Dir == "" {
		cfg.Watch.Dir = DefaultWatchDir
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
