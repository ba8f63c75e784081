package stats

import "math"

// Risk holds the per-metric risk indicators for one scenario.
type Risk struct {
	// CoefficientOfVariation is std/|mean|, a scale-free spread indicator.
	// Reported as 0 when the mean is exactly 0.
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`

	// DownsideRisk is the root-mean-square deviation below the mean,
	// computed only over values falling below the mean.
	DownsideRisk float64 `json:"downside_risk"`

	// ProbabilityOfLoss is the fraction of trials whose final value is
	// below zero.
	ProbabilityOfLoss float64 `json:"probability_of_loss"`
}

// AssessRisk computes the risk indicators for one value set.
func AssessRisk(values []float64) (Risk, error) {
	if len(values) == 0 {
		return Risk{}, errEmpty("risk")
	}

	mean, _ := Mean(values)
	std, _ := StdDev(values)

	var risk Risk
	if mean != 0 {
		risk.CoefficientOfVariation = std / math.Abs(mean)
	}

	var downSumSq float64
	var downCount, lossCount int
	for _, v := range values {
		if v < mean {
			d := v - mean
			downSumSq += d * d
			downCount++
		}
		if v < 0 {
			lossCount++
		}
	}
	if downCount > 0 {
		risk.DownsideRisk = math.Sqrt(downSumSq / float64(downCount))
	}
	risk.ProbabilityOfLoss = float64(lossCount) / float64(len(values))

	return risk, nil
}
