package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"coralline-hq/tidecast/pkg/framework"
	"coralline-hq/tidecast/pkg/simulation"
	"coralline-hq/tidecast/pkg/stats"
)

// Progress milestones: trials fill the 10..80 band, analysis the rest.
const (
	progressTrialsStart = 10.0
	progressTrialsEnd   = 80.0
	progressDone        = 100.0
)

// Terminal status writes are retried: losing the final write leaves the run
// indeterminate for pollers.
const (
	terminalSaveAttempts = 3
	terminalSaveBackoff  = 100 * time.Millisecond
)

// Options configures the simulation engine.
type Options struct {
	// DefaultIterations is used when a request leaves Iterations zero.
	// Default: 1000
	DefaultIterations int

	// MaxIterations caps the per-scenario trial count. Default: 100000
	MaxIterations int

	// Workers is the trial worker-pool width. Default: GOMAXPROCS
	Workers int

	// ProgressInterval is how often progress is persisted while trials
	// run. Default: 250ms
	ProgressInterval time.Duration

	// Logger receives engine log output. Default: slog.Default()
	Logger *slog.Logger

	// Metrics receives engine metrics. Nil disables metric recording.
	Metrics *Metrics

	// Tracer wraps run stages in spans. Nil uses a noop tracer.
	Tracer trace.Tracer
}

// Engine orchestrates Monte Carlo simulation runs as background tasks.
type Engine struct {
	registry *framework.Registry
	store    Store
	opts     Options
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
}

// NewEngine creates an engine backed by the given framework registry and
// run store.
func NewEngine(registry *framework.Registry, store Store, opts Options) *Engine {
	if opts.DefaultIterations <= 0 {
		opts.DefaultIterations = 1000
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100000
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 250 * time.Millisecond
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("tidecast")
	}

	return &Engine{
		registry: registry,
		store:    store,
		opts:     opts,
		logger:   logger.With("component", "montecarlo.engine"),
		metrics:  opts.Metrics,
		tracer:   tracer,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Registry returns the framework registry the engine validates against.
func (e *Engine) Registry() *framework.Registry {
	return e.registry
}

// Start validates the request, persists a pending run, and launches the
// background task. It returns the run ID immediately; all further
// interaction is via Status, Results, and Cancel.
func (e *Engine) Start(ctx context.Context, req Request) (string, error) {
	fw, err := e.registry.Get(req.FrameworkID)
	if err != nil {
		return "", &ValidationError{Field: "framework", Message: err.Error()}
	}
	if len(req.Scenarios) == 0 {
		return "", &ValidationError{Field: "scenarios", Message: "at least one intervention scenario is required"}
	}

	iterations := req.Iterations
	if iterations == 0 {
		iterations = e.opts.DefaultIterations
	}
	if iterations < 1 {
		return "", &ValidationError{Field: "iterations", Message: fmt.Sprintf("iterations must be positive, got %d", iterations)}
	}
	if iterations > e.opts.MaxIterations {
		return "", &ValidationError{Field: "iterations", Message: fmt.Sprintf("iterations %d exceeds the maximum of %d", iterations, e.opts.MaxIterations)}
	}

	horizon := req.HorizonYears
	if horizon == 0 {
		horizon = fw.HorizonYears
	}
	if horizon < 0 {
		return "", &ValidationError{Field: "horizon_years", Message: fmt.Sprintf("time horizon must be non-negative, got %d", horizon)}
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	run := &Run{
		ID:           uuid.NewString(),
		FrameworkID:  fw.ID,
		Baseline:     req.Baseline,
		Iterations:   iterations,
		HorizonYears: horizon,
		Seed:         seed,
		Scenarios:    req.Scenarios,
		Status:       StatusPending,
		Stage:        StageInitialization,
		CreatedAt:    time.Now().UTC(),
	}

	if err := e.store.Save(ctx, run); err != nil {
		return "", &PersistenceError{Op: "save", RunID: run.ID, Cause: err}
	}

	runCtx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		cancel()
		return "", errors.New("engine is closed")
	}
	e.cancels[run.ID] = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	e.metrics.RecordRunStarted()
	go e.execute(runCtx, fw, run)

	return run.ID, nil
}

// Status returns the pollable lifecycle view of a run.
func (e *Engine) Status(ctx context.Context, id string) (*StatusInfo, error) {
	run, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "load", RunID: id, Cause: err}
	}
	if run == nil {
		return nil, &NotFoundError{RunID: id}
	}
	return statusInfo(run), nil
}

// Results returns the complete output of a completed run. For a run in any
// other state it returns a *NotCompletedError carrying the current stage;
// failed and cancelled runs never expose partial results.
func (e *Engine) Results(ctx context.Context, id string) (*Results, error) {
	run, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "load", RunID: id, Cause: err}
	}
	if run == nil {
		return nil, &NotFoundError{RunID: id}
	}
	if run.Status != StatusCompleted {
		return nil, &NotCompletedError{RunID: id, Status: run.Status, Stage: run.Stage}
	}
	return &Results{
		Baseline:        run.BaselineResults,
		Scenarios:       run.ScenarioResults,
		Analysis:        run.Analysis,
		Recommendations: run.Recommendations,
	}, nil
}

// Cancel requests cooperative cancellation of a running run. The run
// transitions to the terminal cancelled state once the background task
// observes the request (checked between trials and between scenarios).
// Cancelling a run that already reached a terminal state is a no-op.
func (e *Engine) Cancel(ctx context.Context, id string) error {
	e.mu.Lock()
	cancel, ok := e.cancels[id]
	e.mu.Unlock()

	if ok {
		cancel()
		return nil
	}

	run, err := e.store.Load(ctx, id)
	if err != nil {
		return &PersistenceError{Op: "load", RunID: id, Cause: err}
	}
	if run == nil {
		return &NotFoundError{RunID: id}
	}
	return nil
}

// Close cancels all in-flight runs and waits for their background tasks to
// reach a terminal state. The engine accepts no new runs after Close.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	cancels := make([]context.CancelFunc, 0, len(e.cancels))
	for _, cancel := range e.cancels {
		cancels = append(cancels, cancel)
	}
	e.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	e.wg.Wait()
}

// execute is the background task for one run. It is the sole mutator of the
// run record; pollers read snapshots from the store.
func (e *Engine) execute(ctx context.Context, fw *framework.Framework, run *Run) {
	defer e.wg.Done()
	defer e.removeCancel(run.ID)

	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "montecarlo.run", trace.WithAttributes(
		attribute.String("run.id", run.ID),
		attribute.String("framework.id", fw.ID),
		attribute.Int("run.iterations", run.Iterations),
		attribute.Int("run.horizon_years", run.HorizonYears),
	))
	defer span.End()

	logger := e.logger.With("run_id", run.ID, "framework", fw.ID)
	logger.Info("simulation run started",
		"iterations", run.Iterations,
		"horizon_years", run.HorizonYears,
		"scenarios", len(run.Scenarios),
	)

	startedAt := time.Now().UTC()
	run.StartedAt = &startedAt
	e.setStage(run, StatusRunning, StageInitialization, 0)

	err := e.generateAndAnalyze(ctx, fw, run)

	completedAt := time.Now().UTC()
	run.CompletedAt = &completedAt

	switch {
	case err == nil:
		run.Status = StatusCompleted
		run.Stage = StageCompleted
		run.Progress = progressDone
	case errors.Is(err, context.Canceled):
		run.Status = StatusCancelled
		run.Error = "run cancelled"
		clearResults(run)
	default:
		run.Status = StatusFailed
		run.Error = err.Error()
		clearResults(run)
	}

	e.saveTerminal(run)
	e.metrics.RecordRunFinished(fw.ID, run.Status, time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(run.Status))
		logger.Error("simulation run ended abnormally", "status", run.Status, "error", err)
		return
	}
	span.SetStatus(codes.Ok, "")
	logger.Info("simulation run completed", "duration", time.Since(start))
}

// generateAndAnalyze runs all trials and the statistical analysis, filling
// the run's result fields on success.
func (e *Engine) generateAndAnalyze(ctx context.Context, fw *framework.Framework, run *Run) error {
	e.setStage(run, StatusRunning, StageMonteCarlo, progressTrialsStart)

	total := int64(len(run.Scenarios)+1) * int64(run.Iterations)
	var done atomic.Int64

	trialsCtx, trialsSpan := e.tracer.Start(ctx, "montecarlo.trials")
	baseline, err := e.runScenario(trialsCtx, fw, run, stats.BaselineName, nil, total, &done)
	if err != nil {
		trialsSpan.End()
		return err
	}

	scenarioSets := make(map[string]simulation.ResultSet, len(run.Scenarios))
	for _, name := range sortedNames(run.Scenarios) {
		if err := ctx.Err(); err != nil {
			trialsSpan.End()
			return err
		}
		rs, err := e.runScenario(trialsCtx, fw, run, name, run.Scenarios[name], total, &done)
		if err != nil {
			trialsSpan.End()
			return err
		}
		scenarioSets[name] = rs
	}
	trialsSpan.End()

	e.setStage(run, StatusRunning, StageAnalysis, progressTrialsEnd)

	_, analysisSpan := e.tracer.Start(ctx, "montecarlo.analysis")
	defer analysisSpan.End()

	analysis, err := stats.Analyze(baseline, scenarioSets, fw)
	if err != nil {
		return err
	}

	run.BaselineResults = baseline
	run.ScenarioResults = scenarioSets
	run.Analysis = analysis
	run.Recommendations = stats.Recommend(analysis)
	return nil
}

// runScenario executes the run's iteration count of independent trials for
// one scenario on the worker pool. Progress is persisted from the
// orchestrator goroutine while the pool drains, preserving the single-writer
// discipline on the run record.
func (e *Engine) runScenario(ctx context.Context, fw *framework.Framework, run *Run, scenario string, params map[string]float64, total int64, done *atomic.Int64) (simulation.ResultSet, error) {
	results := make(simulation.ResultSet, run.Iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for i := 0; i < run.Iterations; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			trialStart := time.Now()
			rng := rand.New(rand.NewSource(trialSeed(run.Seed, scenario, i)))

			outcome := simulation.TrialOutcome{
				Trajectories: make(map[string]simulation.Trajectory, len(fw.Metrics)),
			}
			for _, metric := range fw.Metrics {
				outcome.Trajectories[metric] = simulation.Simulate(fw, metric, run.Baseline, params, run.HorizonYears, rng)
			}
			outcome.NPV, outcome.BCR = simulation.Valuate(outcome.Trajectories, run.HorizonYears)

			results[i] = outcome
			done.Add(1)
			e.metrics.RecordTrialDuration(time.Since(trialStart).Seconds())
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- g.Wait() }()

	ticker := time.NewTicker(e.opts.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-waitErr:
			if err != nil {
				return nil, err
			}
			e.updateProgress(run, done.Load(), total)
			return results, nil
		case <-ticker.C:
			e.updateProgress(run, done.Load(), total)
		}
	}
}

// updateProgress maps completed-trial counts onto the 10..80 progress band
// and persists the run. Progress never moves backwards.
func (e *Engine) updateProgress(run *Run, done, total int64) {
	if total <= 0 {
		return
	}
	progress := progressTrialsStart + (progressTrialsEnd-progressTrialsStart)*float64(done)/float64(total)
	if progress <= run.Progress {
		return
	}
	run.Progress = progress
	e.saveStatus(run)
}

// setStage advances the run's lifecycle fields and persists them.
func (e *Engine) setStage(run *Run, status Status, stage Stage, progress float64) {
	run.Status = status
	run.Stage = stage
	if progress > run.Progress {
		run.Progress = progress
	}
	e.saveStatus(run)
}

// saveStatus persists the run best-effort: a failed intermediate status
// write is logged but never aborts the run.
func (e *Engine) saveStatus(run *Run) {
	if err := e.store.Save(context.Background(), run); err != nil {
		e.logger.Warn("failed to persist run status", "run_id", run.ID, "error", err)
	}
}

// saveTerminal persists the run's terminal state with retries. If every
// attempt fails the run is indeterminate for pollers, which is the one
// persistence failure worth escalating in the logs.
func (e *Engine) saveTerminal(run *Run) {
	var err error
	for attempt := 0; attempt < terminalSaveAttempts; attempt++ {
		if err = e.store.Save(context.Background(), run); err == nil {
			return
		}
		time.Sleep(terminalSaveBackoff * time.Duration(attempt+1))
	}
	e.logger.Error("failed to durably persist terminal run status; run is indeterminate",
		"run_id", run.ID,
		"status", run.Status,
		"error", err,
	)
}

func (e *Engine) removeCancel(id string) {
	e.mu.Lock()
	if cancel, ok := e.cancels[id]; ok {
		cancel()
		delete(e.cancels, id)
	}
	e.mu.Unlock()
}

func clearResults(run *Run) {
	run.BaselineResults = nil
	run.ScenarioResults = nil
	run.Analysis = nil
	run.Recommendations = nil
}

// trialSeed derives a per-trial seed from the run seed, the scenario name,
// and the trial index, so results are reproducible and independent of the
// worker pool's scheduling order.
func trialSeed(base int64, scenario string, trial int) int64 {
	h := fnv.New64a()
	h.Write([]byte(scenario))
	mixed := h.Sum64() ^ (uint64(trial+1) * 0x9e3779b97f4a7c15)
	return base ^ int64(mixed)
}

func sortedNames(scenarios map[string]map[string]float64) []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
