// Package montecarlo orchestrates Monte Carlo policy simulation runs.
//
// # Overview
//
// The Engine accepts a simulation request, validates it against the framework
// registry, and executes it as a background task: N independent trials for
// the baseline and for each named intervention scenario, followed by
// statistical analysis and recommendation synthesis. Starting a run returns
// its ID immediately; callers poll Status and fetch Results once the run
// completes.
//
// Run lifecycle:
//
//	pending → running(initialization)
//	        → running(running_monte_carlo)
//	        → running(analyzing_results)
//	        → completed
//
// with failed reachable from any running stage and cancelled reachable via
// Cancel. Progress is monotone: 10 when trial generation begins, linear to 80
// as trials complete, 80→100 during analysis.
//
// # Concurrency
//
// Trials are embarrassingly parallel and run on an errgroup worker pool; each
// trial owns its random source, derived deterministically from the run seed,
// the scenario name, and the trial index, so the pool's scheduling order
// never affects results. The orchestrator goroutine is the sole writer of the
// run record; readers only poll the store, which hands out snapshots.
//
// # Errors
//
// Validation failures (*ValidationError) are synchronous: Start returns them
// before anything is persisted as running. Status persistence failures during
// a run are logged and tolerated; only the terminal status write is retried,
// since losing it would leave the run indeterminate. A failed or cancelled
// run never exposes partial result sets.
package montecarlo
