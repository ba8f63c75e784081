package stats

import "fmt"

// Recommendation thresholds.
const (
	// highUncertaintyCoV flags a metric as high-uncertainty when its
	// coefficient of variation exceeds this value.
	highUncertaintyCoV = 0.3

	// strongBCR flags a scenario as a strong investment when its mean
	// benefit-cost ratio exceeds this value.
	strongBCR = 1.5
)

// Recommend derives the ordered recommendation list from an analysis:
// the best scenario first, then per-scenario high-uncertainty flags, then
// strong benefit-cost calls. The derivation is deterministic.
func Recommend(a *Analysis) []string {
	var recs []string

	if a.BestScenario == BaselineName {
		recs = append(recs, fmt.Sprintf(
			"No intervention scenario beats the baseline mean NPV of %.2f; maintaining current policy is preferred.",
			a.MeanNPV[BaselineName]))
	} else {
		recs = append(recs, fmt.Sprintf(
			"Scenario %q delivers the highest mean NPV (%.2f vs %.2f baseline).",
			a.BestScenario, a.MeanNPV[a.BestScenario], a.MeanNPV[BaselineName]))
	}

	for _, scenario := range scenarioIterationOrder(a) {
		for _, metric := range a.Metrics {
			risk := a.Risks[scenario][metric]
			if risk.CoefficientOfVariation > highUncertaintyCoV {
				recs = append(recs, fmt.Sprintf(
					"Scenario %q shows high uncertainty for %s (coefficient of variation %.2f); interpret projections cautiously.",
					scenario, metric, risk.CoefficientOfVariation))
			}
		}
	}

	for _, scenario := range a.Scenarios {
		if bcr := a.MeanBCR[scenario]; bcr > strongBCR {
			recs = append(recs, fmt.Sprintf(
				"Scenario %q has a strong benefit-cost profile (mean BCR %.2f).",
				scenario, bcr))
		}
	}

	return recs
}

// scenarioIterationOrder yields baseline first, then the sorted scenarios.
func scenarioIterationOrder(a *Analysis) []string {
	order := make([]string, 0, len(a.Scenarios)+1)
	order = append(order, BaselineName)
	order = append(order, a.Scenarios...)
	return order
}
