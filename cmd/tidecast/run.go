package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coralline-hq/tidecast/pkg/cli"
	"coralline-hq/tidecast/pkg/montecarlo"
	"coralline-hq/tidecast/pkg/stats"
)

var (
	runRequestFile string
	runOutput      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a simulation request and wait for results",
	Long: `Execute a Monte Carlo simulation run described by a YAML request file
and wait for it to complete, showing progress. On completion the analysis
and recommendations are printed.

Example request file:

  framework: mpa_expansion
  baseline:
    biodiversity_recovery: 0.7
  scenarios:
    moderate:
      expansion_rate: 0.5
  iterations: 1000
  horizon_years: 20
  seed: 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(runRequestFile)
		if err != nil {
			return err
		}

		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cli.SetupSignalHandler()

		runID, err := env.engine.Start(ctx, *req)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run %s started\n", runID)

		info, err := pollRun(ctx, env.engine, runID)
		if err != nil {
			return err
		}
		if info.Status != montecarlo.StatusCompleted {
			return fmt.Errorf("run %s ended %s: %s", runID, info.Status, info.Error)
		}

		results, err := env.engine.Results(ctx, runID)
		if err != nil {
			return err
		}
		return printResults(results, runOutput)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runRequestFile, "request", "r", "request.yaml", "simulation request file")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(runCmd)
}

// readRequest parses a simulation request from a YAML file.
func readRequest(path string) (*montecarlo.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %q: %w", path, err)
	}
	var req montecarlo.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request file %q: %w", path, err)
	}
	return &req, nil
}

// pollRun polls a run to a terminal state, driving the progress bar. On
// signal the run is cancelled and the terminal state awaited, so the store
// never holds an abandoned "running" record.
func pollRun(ctx context.Context, engine *montecarlo.Engine, runID string) (*montecarlo.StatusInfo, error) {
	progress := cli.NewProgressReporter(os.Stderr)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	// done is nilled out after the first signal so the select falls back to
	// the ticker while we wait for the cancellation to land.
	done := ctx.Done()
	for {
		select {
		case <-done:
			done = nil
			if err := engine.Cancel(context.Background(), runID); err != nil {
				return nil, err
			}
		case <-ticker.C:
		}

		info, err := engine.Status(context.Background(), runID)
		if err != nil {
			progress.Error(err)
			return nil, err
		}
		progress.Update(info.Progress, string(info.Stage))
		if info.Status.Terminal() {
			progress.Finish()
			return info, nil
		}
	}
}

// printResults renders run results in the selected output format.
func printResults(results *montecarlo.Results, format string) error {
	if format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results)
	}
	renderAnalysis(results.Analysis, results.Recommendations)
	return nil
}

// renderAnalysis prints a human-readable analysis summary.
func renderAnalysis(a *stats.Analysis, recommendations []string) {
	if a == nil {
		fmt.Println("no analysis available")
		return
	}

	scenarios := append([]string{stats.BaselineName}, a.Scenarios...)
	for _, scenario := range scenarios {
		fmt.Printf("%s\n", scenario)
		for _, metric := range a.Metrics {
			s, ok := a.Summaries[scenario][metric]
			if !ok {
				continue
			}
			ci := a.Intervals[scenario][metric]
			fmt.Printf("  %-24s mean %.3f  median %.3f  std %.3f  90%% CI [%.3f, %.3f]\n",
				metric, s.Mean, s.Median, s.StdDev, ci.Lower, ci.Upper)
		}
		fmt.Printf("  %-24s %.3f\n", "mean NPV", a.MeanNPV[scenario])
		fmt.Printf("  %-24s %.3f\n", "mean BCR", a.MeanBCR[scenario])

		if cmp, ok := a.Comparisons[scenario]; ok {
			for _, metric := range a.Metrics {
				c, ok := cmp[metric]
				if !ok {
					continue
				}
				fmt.Printf("  vs baseline %-12s %+.3f (%+.1f%%), t=%.2f, %s\n",
					metric, c.Improvement, c.ImprovementPct, c.TStatistic, c.Significance)
			}
		}
		fmt.Println()
	}

	fmt.Printf("best scenario: %s\n\n", a.BestScenario)
	if len(recommendations) > 0 {
		fmt.Println("recommendations:")
		for _, rec := range recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}
