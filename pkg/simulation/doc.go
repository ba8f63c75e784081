// Package simulation implements the stochastic trajectory model and the
// economic valuation for one Monte Carlo trial.
//
// # Overview
//
// Simulate produces a year-by-year trajectory for one outcome metric: each
// year the metric's base growth rate is adjusted for the intervention (with
// implementation-lag damping in the first five years), scaled by a
// diminishing-returns factor, perturbed by a normal uncertainty draw
// (Box-Muller), and applied multiplicatively to the running value.
//
// Valuate converts a full set of per-metric trajectories into a net present
// value (5% discount rate) and a final-year benefit-cost ratio. Metrics whose
// name contains the substring "cost" count as costs; everything else counts
// as a benefit. The substring classification is crude and misclassifies
// names like "cost_avoidance"; frameworks must name metrics accordingly.
//
// # Purity
//
// Simulate reads only its arguments and draws randomness from the supplied
// source; trials never share mutable simulator state, so any number of trials
// may run concurrently as long as each has its own *rand.Rand.
package simulation
