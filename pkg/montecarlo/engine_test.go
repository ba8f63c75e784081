package montecarlo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"coralline-hq/tidecast/pkg/framework"
	"coralline-hq/tidecast/pkg/montecarlo"
	"coralline-hq/tidecast/pkg/runstore"
	"coralline-hq/tidecast/pkg/simulation"
	"coralline-hq/tidecast/pkg/stats"
)

func newTestEngine(t *testing.T, store montecarlo.Store) *montecarlo.Engine {
	t.Helper()

	engine := montecarlo.NewEngine(framework.Builtin(), store, montecarlo.Options{
		Workers:          4,
		ProgressInterval: 10 * time.Millisecond,
		Metrics:          montecarlo.NewMetricsWith(prometheus.NewRegistry()),
	})
	t.Cleanup(engine.Close)
	return engine
}

func basicRequest() montecarlo.Request {
	return montecarlo.Request{
		FrameworkID:  "mpa_expansion",
		Baseline:     simulation.BaselineData{"biodiversity_recovery": 0.7},
		Iterations:   200,
		HorizonYears: 5,
		Seed:         12345,
		Scenarios: map[string]map[string]float64{
			"moderate_expansion": {"expansion_rate": 0.5},
		},
	}
}

// waitCompleted polls until the run reaches a terminal state.
func waitCompleted(t *testing.T, engine *montecarlo.Engine, id string) *montecarlo.StatusInfo {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		info, err := engine.Status(context.Background(), id)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if info.Status.Terminal() {
			return info
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run did not reach a terminal state in time")
	return nil
}

func TestEngineRunLifecycle(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	id, err := engine.Start(ctx, basicRequest())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if id == "" {
		t.Fatal("Start returned empty run ID")
	}

	info := waitCompleted(t, engine, id)
	if info.Status != montecarlo.StatusCompleted {
		t.Fatalf("Status = %q, want completed (error: %s)", info.Status, info.Error)
	}
	if info.Progress != 100 {
		t.Errorf("Progress = %v, want 100", info.Progress)
	}
	if info.Stage != montecarlo.StageCompleted {
		t.Errorf("Stage = %q, want completed", info.Stage)
	}
	if info.StartedAt == nil || info.CompletedAt == nil {
		t.Error("timestamps not set on completed run")
	}

	results, err := engine.Results(ctx, id)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(results.Baseline) != 200 {
		t.Errorf("baseline has %d trials, want 200", len(results.Baseline))
	}
	if len(results.Scenarios["moderate_expansion"]) != 200 {
		t.Errorf("scenario has %d trials, want 200", len(results.Scenarios["moderate_expansion"]))
	}
	if results.Analysis == nil {
		t.Fatal("completed run has no analysis")
	}
	if len(results.Recommendations) == 0 {
		t.Error("completed run has no recommendations")
	}

	// Every trajectory spans the requested horizon.
	for _, outcome := range results.Baseline {
		traj := outcome.Trajectories["biodiversity_recovery"]
		if len(traj) != 6 {
			t.Fatalf("trajectory has %d points for horizon 5, want 6", len(traj))
		}
	}
}

func TestEngineInterventionOutperformsBaseline(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	id, err := engine.Start(ctx, basicRequest())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	info := waitCompleted(t, engine, id)
	if info.Status != montecarlo.StatusCompleted {
		t.Fatalf("Status = %q, want completed (error: %s)", info.Status, info.Error)
	}

	results, err := engine.Results(ctx, id)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}

	baseMean := meanFinal(t, results.Baseline, "biodiversity_recovery")
	scenMean := meanFinal(t, results.Scenarios["moderate_expansion"], "biodiversity_recovery")
	if scenMean <= baseMean {
		t.Errorf("positive intervention should raise the mean final value: scenario %v <= baseline %v", scenMean, baseMean)
	}

	summary := results.Analysis.Summaries["moderate_expansion"]["biodiversity_recovery"]
	if summary.Mean != scenMean {
		t.Errorf("analysis mean %v does not match result set mean %v", summary.Mean, scenMean)
	}
}

func meanFinal(t *testing.T, rs simulation.ResultSet, metric string) float64 {
	t.Helper()

	finals := rs.FinalValues(metric)
	mean, err := stats.Mean(finals)
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	return mean
}

func TestEngineReproducibleWithSeed(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	req := basicRequest()
	req.Iterations = 50

	var runs [2]*montecarlo.Results
	for i := range runs {
		id, err := engine.Start(ctx, req)
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		info := waitCompleted(t, engine, id)
		if info.Status != montecarlo.StatusCompleted {
			t.Fatalf("Status = %q, want completed (error: %s)", info.Status, info.Error)
		}
		results, err := engine.Results(ctx, id)
		if err != nil {
			t.Fatalf("Results failed: %v", err)
		}
		runs[i] = results
	}

	for i := range runs[0].Baseline {
		a := runs[0].Baseline[i].Trajectories["biodiversity_recovery"].FinalValue()
		b := runs[1].Baseline[i].Trajectories["biodiversity_recovery"].FinalValue()
		if a != b {
			t.Fatalf("trial %d differs across identically seeded runs: %v vs %v", i, a, b)
		}
	}
	for i := range runs[0].Scenarios["moderate_expansion"] {
		a := runs[0].Scenarios["moderate_expansion"][i].NPV
		b := runs[1].Scenarios["moderate_expansion"][i].NPV
		if a != b {
			t.Fatalf("scenario trial %d NPV differs across identically seeded runs: %v vs %v", i, a, b)
		}
	}
}

func TestEngineValidation(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*montecarlo.Request)
		field  string
	}{
		{
			name:   "unknown framework",
			mutate: func(r *montecarlo.Request) { r.FrameworkID = "no_such_framework" },
			field:  "framework",
		},
		{
			name:   "no scenarios",
			mutate: func(r *montecarlo.Request) { r.Scenarios = nil },
			field:  "scenarios",
		},
		{
			name:   "negative iterations",
			mutate: func(r *montecarlo.Request) { r.Iterations = -5 },
			field:  "iterations",
		},
		{
			name:   "excessive iterations",
			mutate: func(r *montecarlo.Request) { r.Iterations = 10_000_000 },
			field:  "iterations",
		},
		{
			name:   "negative horizon",
			mutate: func(r *montecarlo.Request) { r.HorizonYears = -1 },
			field:  "horizon_years",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := basicRequest()
			tc.mutate(&req)

			_, err := engine.Start(ctx, req)
			var verr *montecarlo.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}

	// A rejected request persists nothing.
	if store.Size() != 0 {
		t.Errorf("store holds %d runs after rejected requests, want 0", store.Size())
	}
}

func TestEngineHorizonDefaultsToFramework(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	req := basicRequest()
	req.Iterations = 10
	req.HorizonYears = 0

	id, err := engine.Start(ctx, req)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	info := waitCompleted(t, engine, id)
	if info.Status != montecarlo.StatusCompleted {
		t.Fatalf("Status = %q, want completed (error: %s)", info.Status, info.Error)
	}

	run, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// mpa_expansion declares a 20-year horizon.
	if run.HorizonYears != 20 {
		t.Errorf("HorizonYears = %d, want the framework default of 20", run.HorizonYears)
	}
}

func TestEngineStatusUnknownRun(t *testing.T) {
	engine := newTestEngine(t, runstore.NewMemoryStore())

	_, err := engine.Status(context.Background(), "no-such-run")
	var nferr *montecarlo.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nferr.RunID != "no-such-run" {
		t.Errorf("RunID = %q, want no-such-run", nferr.RunID)
	}
}

func TestEngineResultsUnknownRun(t *testing.T) {
	engine := newTestEngine(t, runstore.NewMemoryStore())

	_, err := engine.Results(context.Background(), "no-such-run")
	var nferr *montecarlo.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestEngineResultsNotCompleted(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	// Seed the store with a run still mid-flight.
	run := &montecarlo.Run{
		ID:          "in-flight",
		FrameworkID: "mpa_expansion",
		Status:      montecarlo.StatusRunning,
		Stage:       montecarlo.StageMonteCarlo,
		Progress:    42,
		CreatedAt:   time.Now(),
	}
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err := engine.Results(ctx, "in-flight")
	var ncerr *montecarlo.NotCompletedError
	if !errors.As(err, &ncerr) {
		t.Fatalf("expected *NotCompletedError, got %v", err)
	}
	if ncerr.Status != montecarlo.StatusRunning {
		t.Errorf("Status = %q, want running", ncerr.Status)
	}
	if ncerr.Stage != montecarlo.StageMonteCarlo {
		t.Errorf("Stage = %q, want running_monte_carlo", ncerr.Stage)
	}
}

func TestEngineCancelDiscardsResults(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	req := basicRequest()
	req.Iterations = 50000 // long enough to cancel mid-flight

	id, err := engine.Start(ctx, req)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := engine.Cancel(ctx, id); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	info := waitCompleted(t, engine, id)
	if info.Status != montecarlo.StatusCancelled {
		t.Fatalf("Status = %q, want cancelled", info.Status)
	}

	_, err = engine.Results(ctx, id)
	var ncerr *montecarlo.NotCompletedError
	if !errors.As(err, &ncerr) {
		t.Fatalf("expected *NotCompletedError for cancelled run, got %v", err)
	}

	// No partial results survive cancellation.
	run, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if run.BaselineResults != nil || run.ScenarioResults != nil || run.Analysis != nil {
		t.Error("cancelled run retained partial results")
	}
}

func TestEngineCancelTerminalIsNoOp(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	req := basicRequest()
	req.Iterations = 10

	id, err := engine.Start(ctx, req)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	info := waitCompleted(t, engine, id)
	if info.Status != montecarlo.StatusCompleted {
		t.Fatalf("Status = %q, want completed (error: %s)", info.Status, info.Error)
	}

	if err := engine.Cancel(ctx, id); err != nil {
		t.Errorf("Cancel of completed run failed: %v", err)
	}

	after, err := engine.Status(ctx, id)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if after.Status != montecarlo.StatusCompleted {
		t.Errorf("Status = %q after no-op cancel, want completed", after.Status)
	}
}

func TestEngineCancelUnknownRun(t *testing.T) {
	engine := newTestEngine(t, runstore.NewMemoryStore())

	err := engine.Cancel(context.Background(), "no-such-run")
	var nferr *montecarlo.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestEngineMultipleScenarios(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := newTestEngine(t, store)
	ctx := context.Background()

	req := basicRequest()
	req.Iterations = 50
	req.Scenarios = map[string]map[string]float64{
		"modest":     {"expansion_rate": 0.2},
		"aggressive": {"expansion_rate": 0.9, "enforcement_level": 0.8},
	}

	id, err := engine.Start(ctx, req)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	info := waitCompleted(t, engine, id)
	if info.Status != montecarlo.StatusCompleted {
		t.Fatalf("Status = %q, want completed (error: %s)", info.Status, info.Error)
	}

	results, err := engine.Results(ctx, id)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(results.Scenarios) != 2 {
		t.Fatalf("got %d scenario result sets, want 2", len(results.Scenarios))
	}
	for name, rs := range results.Scenarios {
		if len(rs) != 50 {
			t.Errorf("scenario %s has %d trials, want 50", name, len(rs))
		}
	}
	if len(results.Analysis.Comparisons) != 2 {
		t.Errorf("got %d comparisons, want 2", len(results.Analysis.Comparisons))
	}
}

func TestEngineCloseStopsNewRuns(t *testing.T) {
	store := runstore.NewMemoryStore()
	engine := montecarlo.NewEngine(framework.Builtin(), store, montecarlo.Options{
		Metrics: montecarlo.NewMetricsWith(prometheus.NewRegistry()),
	})
	engine.Close()

	_, err := engine.Start(context.Background(), basicRequest())
	if err == nil {
		t.Error("expected error starting a run on a closed engine")
	}
}
