package config

import (
	"errors"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Engine.DefaultIterations != 1000 {
		t.Errorf("DefaultIterations = %d, want 1000", cfg.Engine.DefaultIterations)
	}
	if cfg.Engine.MaxIterations != 100000 {
		t.Errorf("MaxIterations = %d, want 100000", cfg.Engine.MaxIterations)
	}
	if cfg.Engine.ProgressInterval != 250*time.Millisecond {
		t.Errorf("ProgressInterval = %v, want 250ms", cfg.Engine.ProgressInterval)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Store.SQLite.Path != "data/runs.db" {
		t.Errorf("SQLite.Path = %q, want data/runs.db", cfg.Store.SQLite.Path)
	}
	if cfg.Retention.Days != 30 {
		t.Errorf("Retention.Days = %d, want 30", cfg.Retention.Days)
	}
	if cfg.Retention.Schedule != "0 3 * * *" {
		t.Errorf("Retention.Schedule = %q, want daily at 3 AM", cfg.Retention.Schedule)
	}
	if cfg.Telemetry.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 1.0 {
		t.Errorf("Tracing.SampleRatio = %v, want 1.0", cfg.Telemetry.Tracing.SampleRatio)
	}
	if cfg.Watch.Dir != "requests" {
		t.Errorf("Watch.Dir = %q, want requests", cfg.Watch.Dir)
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Engine.DefaultIterations = 500
	cfg.Store.Backend = "sqlite"
	cfg.Telemetry.Logging.Level = "debug"

	ApplyDefaults(cfg)

	if cfg.Engine.DefaultIterations != 500 {
		t.Errorf("DefaultIterations = %d, want 500", cfg.Engine.DefaultIterations)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestValidateDefaultsPass(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.DefaultIterations = -1
	cfg.Store.Backend = "cassandra"
	cfg.Telemetry.Logging.Level = "loud"

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(verr.Errors), verr)
	}
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "default iterations over max",
			mutate: func(c *Config) { c.Engine.DefaultIterations = 200000 },
			field:  "engine.default_iterations",
		},
		{
			name:   "negative workers",
			mutate: func(c *Config) { c.Engine.Workers = -2 },
			field:  "engine.workers",
		},
		{
			name:   "sqlite without path",
			mutate: func(c *Config) { c.Store.Backend = "sqlite"; c.Store.SQLite.Path = "" },
			field:  "store.sqlite.path",
		},
		{
			name:   "negative retention days",
			mutate: func(c *Config) { c.Retention.Days = -1 },
			field:  "retention.days",
		},
		{
			name:   "bad cron schedule",
			mutate: func(c *Config) { c.Retention.Schedule = "whenever" },
			field:  "retention.schedule",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
		{
			name:   "tracing enabled without endpoint",
			mutate: func(c *Config) { c.Telemetry.Tracing.Enabled = true },
			field:  "telemetry.tracing.endpoint",
		},
		{
			name:   "sample ratio above one",
			mutate: func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			field:  "telemetry.tracing.sample_ratio",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tc.field, verr)
			}
		})
	}
}
