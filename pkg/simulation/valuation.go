package simulation

import (
	"math"
	"strings"
)

// DiscountRate is the annual discount rate applied to all metric values.
const DiscountRate = 0.05

// defaultBCR is reported when a trial has no positive total cost.
const defaultBCR = 1.0

// Valuate computes the net present value and the benefit-cost ratio for one
// trial's full set of trajectories.
//
// NPV discounts every metric's value in every year by 1/(1+DiscountRate)^year;
// cost metrics subtract from the total, benefit metrics add. BCR divides the
// final-year benefit total by the final-year cost total, defaulting to 1.0
// when costs are not positive.
func Valuate(trajectories map[string]Trajectory, horizon int) (npv, bcr float64) {
	for year := 0; year <= horizon; year++ {
		discount := math.Pow(1+DiscountRate, float64(year))
		for metric, trajectory := range trajectories {
			if year >= len(trajectory) {
				continue
			}
			discounted := trajectory[year].Value / discount
			if IsCostMetric(metric) {
				npv -= discounted
			} else {
				npv += discounted
			}
		}
	}

	var totalBenefit, totalCost float64
	for metric, trajectory := range trajectories {
		final := trajectory.FinalValue()
		if IsCostMetric(metric) {
			totalCost += final
		} else {
			totalBenefit += final
		}
	}

	bcr = defaultBCR
	if totalCost > 0 {
		bcr = totalBenefit / totalCost
	}

	return npv, bcr
}

// IsCostMetric reports whether a metric counts as a cost in the valuation.
// Classification is by the substring "cost" in the metric name, so a name
// like "cost_avoidance" would misclassify; frameworks must name benefit
// metrics accordingly.
func IsCostMetric(metric string) bool {
	return strings.Contains(metric, "cost")
}
