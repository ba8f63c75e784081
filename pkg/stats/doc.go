// Package stats turns scenario result sets into decision-support analysis.
//
// # Overview
//
// The package computes, per scenario and per metric, summary statistics over
// final-year trial values (mean, median, population standard deviation, min,
// max, 5th/95th percentile), 90% percentile-band confidence intervals, and
// risk indicators (coefficient of variation, downside risk, probability of
// loss). Non-baseline scenarios are compared against the baseline with a
// pooled-variance t-statistic and a fixed |t| > 2.0 significance cutoff, a
// coarse threshold heuristic rather than an exact p-value.
//
// Recommend derives an ordered list of human-readable conclusions from an
// Analysis: the best-NPV scenario first, then per-scenario high-uncertainty
// flags, then strong benefit-cost calls.
//
// # Errors
//
// Degenerate inputs (empty value sets) surface as *ComputationError rather
// than propagating NaN through the analysis.
package stats
