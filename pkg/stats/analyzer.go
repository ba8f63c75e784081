package stats

import (
	"fmt"
	"sort"

	"coralline-hq/tidecast/pkg/framework"
	"coralline-hq/tidecast/pkg/simulation"
)

// BaselineName is the scenario key used for the no-intervention result set.
const BaselineName = "baseline"

// Analysis is the complete statistical record derived from all scenario
// result sets of one simulation run.
type Analysis struct {
	// Metrics preserves the framework's metric declaration order so
	// consumers can iterate deterministically.
	Metrics []string `json:"metrics"`

	// Scenarios lists the non-baseline scenario names in sorted order.
	Scenarios []string `json:"scenarios"`

	// Summaries maps scenario → metric → summary statistics over
	// final-year trial values. Includes the baseline.
	Summaries map[string]map[string]Summary `json:"summaries"`

	// Intervals maps scenario → metric → 90% confidence interval.
	Intervals map[string]map[string]Interval `json:"confidence_intervals"`

	// Risks maps scenario → metric → risk indicators.
	Risks map[string]map[string]Risk `json:"risks"`

	// Comparisons maps non-baseline scenario → metric → baseline
	// comparison.
	Comparisons map[string]map[string]Comparison `json:"comparisons"`

	// MeanNPV and MeanBCR map every scenario (baseline included) to its
	// mean economic scalars.
	MeanNPV map[string]float64 `json:"mean_npv"`
	MeanBCR map[string]float64 `json:"mean_bcr"`

	// BestScenario is the non-baseline scenario with the highest mean NPV,
	// or "baseline" when no scenario beats it.
	BestScenario string `json:"best_scenario"`
}

// Analyze computes the full analysis from the baseline result set and the
// named scenario result sets.
func Analyze(baseline simulation.ResultSet, scenarios map[string]simulation.ResultSet, fw *framework.Framework) (*Analysis, error) {
	if len(baseline) == 0 {
		return nil, &ComputationError{Op: "analyze", Message: "baseline result set is empty"}
	}

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	a := &Analysis{
		Metrics:     append([]string(nil), fw.Metrics...),
		Scenarios:   names,
		Summaries:   make(map[string]map[string]Summary, len(scenarios)+1),
		Intervals:   make(map[string]map[string]Interval, len(scenarios)+1),
		Risks:       make(map[string]map[string]Risk, len(scenarios)+1),
		Comparisons: make(map[string]map[string]Comparison, len(scenarios)),
		MeanNPV:     make(map[string]float64, len(scenarios)+1),
		MeanBCR:     make(map[string]float64, len(scenarios)+1),
	}

	all := make(map[string]simulation.ResultSet, len(scenarios)+1)
	all[BaselineName] = baseline
	for name, rs := range scenarios {
		all[name] = rs
	}

	for name, rs := range all {
		if len(rs) == 0 {
			return nil, &ComputationError{Op: "analyze", Message: fmt.Sprintf("scenario %q result set is empty", name)}
		}

		summaries := make(map[string]Summary, len(fw.Metrics))
		intervals := make(map[string]Interval, len(fw.Metrics))
		risks := make(map[string]Risk, len(fw.Metrics))

		for _, metric := range fw.Metrics {
			values := rs.FinalValues(metric)

			summary, err := Summarize(values)
			if err != nil {
				return nil, err
			}
			interval, err := ConfidenceInterval(values)
			if err != nil {
				return nil, err
			}
			risk, err := AssessRisk(values)
			if err != nil {
				return nil, err
			}

			summaries[metric] = summary
			intervals[metric] = interval
			risks[metric] = risk
		}

		a.Summaries[name] = summaries
		a.Intervals[name] = intervals
		a.Risks[name] = risks

		meanNPV, err := Mean(rs.NPVs())
		if err != nil {
			return nil, err
		}
		meanBCR, err := Mean(rs.BCRs())
		if err != nil {
			return nil, err
		}
		a.MeanNPV[name] = meanNPV
		a.MeanBCR[name] = meanBCR
	}

	for _, name := range names {
		rs := scenarios[name]
		comparisons := make(map[string]Comparison, len(fw.Metrics))
		for _, metric := range fw.Metrics {
			c, err := Compare(baseline.FinalValues(metric), rs.FinalValues(metric))
			if err != nil {
				return nil, err
			}
			comparisons[metric] = c
		}
		a.Comparisons[name] = comparisons
	}

	a.BestScenario = bestScenario(a)

	return a, nil
}

// bestScenario picks the non-baseline scenario with the highest mean NPV,
// falling back to the baseline when no scenario beats it.
func bestScenario(a *Analysis) string {
	best := BaselineName
	bestNPV := a.MeanNPV[BaselineName]
	for _, name := range a.Scenarios {
		if npv := a.MeanNPV[name]; npv > bestNPV {
			best = name
			bestNPV = npv
		}
	}
	return best
}
