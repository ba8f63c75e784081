package batch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"coralline-hq/tidecast/pkg/montecarlo"
	"coralline-hq/tidecast/pkg/simulation"
	"coralline-hq/tidecast/pkg/stats"
)

// Options configures a batch analysis.
type Options struct {
	// Iterations is the per-run trial count. Batch analyses trade precision
	// for breadth, so the default is lower than the engine's. Default: 200
	Iterations int

	// HorizonYears overrides the framework's time horizon when positive.
	HorizonYears int

	// Seed makes every run in the batch reproducible when non-zero.
	Seed int64

	// PollInterval is how often run status is polled. Default: 50ms
	PollInterval time.Duration

	// Timeout bounds the wait for each run. Default: 5 minutes
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = 200
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 50 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Minute
	}
	return o
}

// ScenarioRanking is one scenario's standing in a batch comparison.
type ScenarioRanking struct {
	// Scenario is the scenario name from the request.
	Scenario string `json:"scenario"`

	// RunID identifies the engine run that produced this entry.
	RunID string `json:"run_id"`

	// MeanNPV is the scenario's mean net present value across trials.
	MeanNPV float64 `json:"mean_npv"`

	// Improvement is MeanNPV minus the same run's baseline mean NPV.
	Improvement float64 `json:"improvement"`
}

// ScenarioAnalysis runs each named scenario as an isolated engine run and
// ranks the scenarios by mean NPV improvement over baseline, best first.
//
// Each scenario gets its own run (and its own baseline trials), so a failure
// in one scenario does not discard the others; the first failure aborts the
// batch with the offending scenario named.
func ScenarioAnalysis(ctx context.Context, engine *montecarlo.Engine, frameworkID string, baseline simulation.BaselineData, scenarios map[string]map[string]float64, opts Options) ([]ScenarioRanking, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("at least one scenario is required")
	}
	opts = opts.withDefaults()

	rankings := make([]ScenarioRanking, 0, len(scenarios))
	for _, name := range sortedScenarioNames(scenarios) {
		req := montecarlo.Request{
			FrameworkID:  frameworkID,
			Baseline:     baseline,
			Scenarios:    map[string]map[string]float64{name: scenarios[name]},
			Iterations:   opts.Iterations,
			HorizonYears: opts.HorizonYears,
			Seed:         opts.Seed,
		}

		results, runID, err := runToCompletion(ctx, engine, req, opts)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}

		rankings = append(rankings, ScenarioRanking{
			Scenario:    name,
			RunID:       runID,
			MeanNPV:     results.Analysis.MeanNPV[name],
			Improvement: results.Analysis.MeanNPV[name] - results.Analysis.MeanNPV[stats.BaselineName],
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].Improvement > rankings[j].Improvement
	})
	return rankings, nil
}

// runToCompletion submits a run and polls until it reaches a terminal state,
// returning its results.
func runToCompletion(ctx context.Context, engine *montecarlo.Engine, req montecarlo.Request, opts Options) (*montecarlo.Results, string, error) {
	runID, err := engine.Start(ctx, req)
	if err != nil {
		return nil, "", err
	}

	deadline := time.Now().Add(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Don't leave the run computing results nobody will read.
			_ = engine.Cancel(context.Background(), runID)
			return nil, runID, ctx.Err()
		case <-ticker.C:
			info, err := engine.Status(ctx, runID)
			if err != nil {
				return nil, runID, err
			}
			if info.Status.Terminal() {
				if info.Status != montecarlo.StatusCompleted {
					return nil, runID, fmt.Errorf("run %s ended %s: %s", runID, info.Status, info.Error)
				}
				results, err := engine.Results(ctx, runID)
				if err != nil {
					return nil, runID, err
				}
				return results, runID, nil
			}
			if time.Now().After(deadline) {
				_ = engine.Cancel(context.Background(), runID)
				return nil, runID, fmt.Errorf("run %s did not complete within %s", runID, opts.Timeout)
			}
		}
	}
}

func sortedScenarioNames(scenarios map[string]map[string]float64) []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
