package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"coralline-hq/tidecast/internal/watch"
	"coralline-hq/tidecast/pkg/cli"
	"coralline-hq/tidecast/pkg/runstore"
)

var watchMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory for request files and execute them",
	Long: `Watch a directory for simulation request files and execute each new
file as a run. Processed files are moved to the configured done directory.

While watching, the retention scheduler prunes old runs on its cron
schedule, and Prometheus metrics are served when --metrics-addr is set.
The watcher runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cli.SetupSignalHandler()

		// Retention runs alongside the watcher; this is the long-lived mode.
		pruner := runstore.NewPruner(env.store, &runstore.RetentionConfig{
			RetentionDays: env.cfg.Retention.Days,
			MaxRuns:       env.cfg.Retention.MaxRuns,
			PruneSchedule: env.cfg.Retention.Schedule,
		})
		scheduler := runstore.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()

		if watchMetricsAddr != "" {
			go serveMetrics(ctx, watchMetricsAddr)
		}

		watcher, err := watch.New(watch.Config{
			Dir:     env.cfg.Watch.Dir,
			DoneDir: env.cfg.Watch.DoneDir,
		}, env.logger)
		if err != nil {
			return err
		}

		return watcher.Watch(ctx, func(path string) error {
			req, err := readRequest(path)
			if err != nil {
				return err
			}
			runID, err := env.engine.Start(ctx, *req)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "run %s started from %s\n", runID, path)
			return nil
		})
	},
}

// serveMetrics exposes the Prometheus registry over HTTP until the context
// is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (e.g. :9090)")
	rootCmd.AddCommand(watchCmd)
}
