// Package batch composes multi-run analyses on top of the simulation engine.
//
// # Overview
//
// Two compositions are provided:
//
//   - ScenarioAnalysis runs each named scenario as its own simulation run
//     and ranks scenarios by mean NPV improvement over baseline.
//   - SensitivityAnalysis sweeps a single intervention parameter across a
//     set of values and reports how strongly the mean NPV responds.
//
// Both are thin orchestrations: they submit ordinary engine runs, poll for
// completion, and read results through the engine's public surface. They add
// no simulation semantics of their own.
package batch
