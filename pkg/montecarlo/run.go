package montecarlo

import (
	"time"

	"coralline-hq/tidecast/pkg/simulation"
	"coralline-hq/tidecast/pkg/stats"
)

// Status is the lifecycle state of a simulation run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status is final. Terminal runs are immutable.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Stage is the free-text phase label reported while a run executes.
type Stage string

const (
	StageInitialization Stage = "initialization"
	StageMonteCarlo     Stage = "running_monte_carlo"
	StageAnalysis       Stage = "analyzing_results"
	StageCompleted      Stage = "completed"
)

// Request describes one simulation run to execute.
type Request struct {
	// FrameworkID names the policy framework to simulate.
	FrameworkID string `yaml:"framework" json:"framework_id"`

	// Baseline maps metric names to starting values. Missing metrics use
	// the framework's per-metric defaults.
	Baseline simulation.BaselineData `yaml:"baseline" json:"baseline"`

	// Scenarios maps scenario names to intervention parameter values.
	// At least one scenario is required.
	Scenarios map[string]map[string]float64 `yaml:"scenarios" json:"scenarios"`

	// Iterations is the number of independent trials per scenario.
	// Zero uses the engine default.
	Iterations int `yaml:"iterations" json:"iterations"`

	// HorizonYears overrides the framework's time horizon when positive.
	HorizonYears int `yaml:"horizon_years" json:"horizon_years"`

	// Seed makes the run reproducible when non-zero; zero draws a seed
	// from the clock. The effective seed is recorded on the run.
	Seed int64 `yaml:"seed" json:"seed"`
}

// Run is the aggregate record of one simulation run. It is created when a
// request is accepted, mutated only by the engine's background task, and
// immutable once its status is terminal.
type Run struct {
	ID           string                  `json:"id"`
	FrameworkID  string                  `json:"framework_id"`
	Baseline     simulation.BaselineData `json:"baseline"`
	Iterations   int                     `json:"iterations"`
	HorizonYears int                     `json:"horizon_years"`
	Seed         int64                   `json:"seed"`

	// Scenarios records the requested intervention parameter sets.
	Scenarios map[string]map[string]float64 `json:"scenarios"`

	// BaselineResults and ScenarioResults hold the trial outcomes; they
	// are populated only on completed runs.
	BaselineResults simulation.ResultSet            `json:"baseline_results,omitempty"`
	ScenarioResults map[string]simulation.ResultSet `json:"scenario_results,omitempty"`

	// Analysis and Recommendations are populated only on completed runs.
	Analysis        *stats.Analysis `json:"analysis,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`

	Status   Status  `json:"status"`
	Stage    Stage   `json:"stage"`
	Progress float64 `json:"progress"`
	Error    string  `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StatusInfo is the pollable view of a run's lifecycle fields.
type StatusInfo struct {
	ID          string     `json:"id"`
	FrameworkID string     `json:"framework_id"`
	Status      Status     `json:"status"`
	Stage       Stage      `json:"stage"`
	Progress    float64    `json:"progress"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Results is the complete output of a completed run.
type Results struct {
	Baseline        simulation.ResultSet            `json:"baseline"`
	Scenarios       map[string]simulation.ResultSet `json:"scenarios"`
	Analysis        *stats.Analysis                 `json:"analysis"`
	Recommendations []string                        `json:"recommendations"`
}

// statusInfo projects the lifecycle fields out of a run snapshot.
func statusInfo(run *Run) *StatusInfo {
	return &StatusInfo{
		ID:          run.ID,
		FrameworkID: run.FrameworkID,
		Status:      run.Status,
		Stage:       run.Stage,
		Progress:    run.Progress,
		Error:       run.Error,
		CreatedAt:   run.CreatedAt,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
	}
}
