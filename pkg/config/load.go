package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow the
// naming convention TIDECAST_SECTION_FIELD (e.g., TIDECAST_STORE_BACKEND).
// Environment variables always take precedence over file-based
// configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format
// TIDECAST_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Engine overrides
	if val := os.Getenv("TIDECAST_ENGINE_DEFAULT_ITERATIONS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.DefaultIterations = i
		}
	}
	if val := os.Getenv("TIDECAST_ENGINE_MAX_ITERATIONS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.MaxIterations = i
		}
	}
	if val := os.Getenv("TIDECAST_ENGINE_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.Workers = i
		}
	}
	if val := os.Getenv("TIDECAST_ENGINE_PROGRESS_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Engine.ProgressInterval = d
		}
	}

	// Frameworks overrides
	if val := os.Getenv("TIDECAST_FRAMEWORKS_CATALOG_PATH"); val != "" {
		cfg.Frameworks.CatalogPath = val
	}

	// Store overrides
	if val := os.Getenv("TIDECAST_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("TIDECAST_STORE_SQLITE_PATH"); val != "" {
		cfg.Store.SQLite.Path = val
	}
	if val := os.Getenv("TIDECAST_STORE_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.SQLite.BusyTimeout = d
		}
	}

	// Retention overrides
	if val := os.Getenv("TIDECAST_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.Days = i
		}
	}
	if val := os.Getenv("TIDECAST_RETENTION_MAX_RUNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.MaxRuns = i
		}
	}
	if val := os.Getenv("TIDECAST_RETENTION_SCHEDULE"); val != "" {
		cfg.Retention.Schedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("TIDECAST_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TIDECAST_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("TIDECAST_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("TIDECAST_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("TIDECAST_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}

	// Watch overrides
	if val := os.Getenv("TIDECAST_WATCH_DIR"); val != "" {
		cfg.Watch.Dir = val
	}
	if val := os.Getenv("TIDECAST_WATCH_DONE_DIR"); val != "" {
		cfg.Watch.DoneDir = val
	}
}
