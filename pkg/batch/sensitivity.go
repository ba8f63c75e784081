package batch

import (
	"context"
	"fmt"

	"coralline-hq/tidecast/pkg/montecarlo"
	"coralline-hq/tidecast/pkg/simulation"
)

// SensitivityPoint is the outcome of one parameter value in a sweep.
type SensitivityPoint struct {
	// Value is the intervention parameter value tested.
	Value float64 `json:"value"`

	// RunID identifies the engine run that produced this point.
	RunID string `json:"run_id"`

	// MeanNPV is the mean net present value at this parameter value.
	MeanNPV float64 `json:"mean_npv"`
}

// SensitivityResult summarizes a single-parameter sweep.
type SensitivityResult struct {
	// Parameter is the intervention parameter that was swept.
	Parameter string `json:"parameter"`

	// Points holds one entry per tested value, in input order.
	Points []SensitivityPoint `json:"points"`

	// Range is the spread of mean NPV across the sweep (max minus min).
	// A larger range means the outcome is more sensitive to this parameter.
	Range float64 `json:"range"`
}

// SensitivityAnalysis sweeps one intervention parameter across the given
// values, running each value as an isolated single-scenario engine run, and
// reports how strongly the mean NPV responds.
func SensitivityAnalysis(ctx context.Context, engine *montecarlo.Engine, frameworkID string, baseline simulation.BaselineData, parameter string, values []float64, opts Options) (*SensitivityResult, error) {
	if parameter == "" {
		return nil, fmt.Errorf("parameter name is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one parameter value is required")
	}
	opts = opts.withDefaults()

	result := &SensitivityResult{
		Parameter: parameter,
		Points:    make([]SensitivityPoint, 0, len(values)),
	}

	for _, value := range values {
		name := fmt.Sprintf("%s=%g", parameter, value)
		req := montecarlo.Request{
			FrameworkID:  frameworkID,
			Baseline:     baseline,
			Scenarios:    map[string]map[string]float64{name: {parameter: value}},
			Iterations:   opts.Iterations,
			HorizonYears: opts.HorizonYears,
			Seed:         opts.Seed,
		}

		results, runID, err := runToCompletion(ctx, engine, req, opts)
		if err != nil {
			return nil, fmt.Errorf("value %g: %w", value, err)
		}

		result.Points = append(result.Points, SensitivityPoint{
			Value:   value,
			RunID:   runID,
			MeanNPV: results.Analysis.MeanNPV[name],
		})
	}

	min, max := result.Points[0].MeanNPV, result.Points[0].MeanNPV
	for _, point := range result.Points[1:] {
		if point.MeanNPV < min {
			min = point.MeanNPV
		}
		if point.MeanNPV > max {
			max = point.MeanNPV
		}
	}
	result.Range = max - min

	return result, nil
}
