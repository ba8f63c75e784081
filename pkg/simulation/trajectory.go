package simulation

import (
	"math"
	"math/rand"

	"coralline-hq/tidecast/pkg/framework"
)

// Implementation-lag damping: intervention effects phase in over the first
// five years of a policy.
const (
	earlyLagYears  = 3
	earlyLagFactor = 0.5
	midLagYears    = 5
	midLagFactor   = 0.8
)

// Simulate produces one stochastic trajectory for a single metric.
//
// The intervention map holds parameter values by name; a nil or empty map
// means no intervention, which skips both the parameter adjustment and the
// implementation-lag damping. The diminishing-returns factor and the
// uncertainty draw apply in both cases.
func Simulate(fw *framework.Framework, metric string, baseline BaselineData, intervention map[string]float64, horizon int, rng *rand.Rand) Trajectory {
	trajectory := make(Trajectory, 0, horizon+1)
	value := fw.BaselineFor(metric, baseline)
	std := fw.UncertaintyStd(metric)

	for year := 0; year <= horizon; year++ {
		rate := rateForYear(fw, metric, intervention, year)
		uncertainty := normalDraw(rng, std)
		adjusted := rate * (1 + uncertainty)
		value *= 1 + adjusted

		trajectory = append(trajectory, Point{
			Year:        year,
			Value:       value,
			GrowthRate:  adjusted,
			Uncertainty: uncertainty,
		})
	}

	return trajectory
}

// rateForYear computes the deterministic part of a year's growth rate: the
// metric's base rate, intervention-adjusted and lag-damped when an
// intervention is present, then scaled by the diminishing-returns factor.
func rateForYear(fw *framework.Framework, metric string, intervention map[string]float64, year int) float64 {
	rate := fw.BaseRate(metric)

	if len(intervention) > 0 {
		for param, effect := range fw.ParamEffects(metric) {
			if v, ok := intervention[param]; ok {
				rate *= 1 + v*effect
			}
		}
		switch {
		case year < earlyLagYears:
			rate *= earlyLagFactor
		case year < midLagYears:
			rate *= midLagFactor
		}
	}

	return rate * diminishingReturns(year)
}

// diminishingReturns decays linearly with the simulation year and floors at
// 0.1 (reached at year 45).
func diminishingReturns(year int) float64 {
	return math.Max(0.1, 1-float64(year)*0.02)
}

// normalDraw samples a normal variate with mean 0 and the given standard
// deviation using the Box-Muller transform.
func normalDraw(rng *rand.Rand, std float64) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z * std
}
