package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"coralline-hq/tidecast/pkg/config"
	"coralline-hq/tidecast/pkg/framework"
	"coralline-hq/tidecast/pkg/montecarlo"
	"coralline-hq/tidecast/pkg/runstore"
	"coralline-hq/tidecast/pkg/telemetry/logging"
	"coralline-hq/tidecast/pkg/telemetry/tracing"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tidecast",
	Short: "Tidecast - Monte Carlo simulation engine for conservation policy",
	Long: `Tidecast evaluates marine conservation policy interventions under
uncertainty. It runs Monte Carlo trials of outcome trajectories for a policy
framework, compares intervention scenarios against a no-intervention
baseline, and reports statistical summaries, risk profiles, and
recommendations.

Simulation requests are YAML files naming a framework, baseline values,
intervention scenarios, and trial counts.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// appEnv bundles the long-lived dependencies a command needs.
type appEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	store  montecarlo.Store
	tracer *tracing.Tracer
	engine *montecarlo.Engine
}

// loadAppConfig loads configuration from --config (with environment
// overrides), or defaults when no file is given.
func loadAppConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newAppEnv builds the store, logger, tracer, and engine from configuration.
// Callers must invoke close when finished.
func newAppEnv() (*appEnv, func(), error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, err
	}

	logCfg := logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
		Writer: os.Stderr,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	registry, err := framework.LoadRegistry(cfg.Frameworks.CatalogPath)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	engine := montecarlo.NewEngine(registry, store, montecarlo.Options{
		DefaultIterations: cfg.Engine.DefaultIterations,
		MaxIterations:     cfg.Engine.MaxIterations,
		Workers:           cfg.Engine.Workers,
		ProgressInterval:  cfg.Engine.ProgressInterval,
		Logger:            logger,
		Metrics:           montecarlo.NewMetrics(),
		Tracer:            tracer.Tracer(),
	})

	env := &appEnv{
		cfg:    cfg,
		logger: logger,
		store:  store,
		tracer: tracer,
		engine: engine,
	}
	cleanup := func() {
		engine.Close()
		_ = tracer.Shutdown(context.Background())
		_ = store.Close()
	}
	return env, cleanup, nil
}

// buildStore constructs the configured run store backend.
func buildStore(cfg *config.Config) (montecarlo.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return runstore.NewSQLiteStoreWithConfig(runstore.SQLiteConfig{
			DBPath:             cfg.Store.SQLite.Path,
			BusyTimeout:        cfg.Store.SQLite.BusyTimeout,
			CheckpointInterval: cfg.Store.SQLite.CheckpointInterval,
		})
	default:
		return runstore.NewMemoryStore(), nil
	}
}
