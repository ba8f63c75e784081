package stats

import "math"

// Significance labels produced by Compare.
const (
	Significant    = "significant"
	NotSignificant = "not_significant"
)

// significanceThreshold is the fixed |t| cutoff. It is a coarse heuristic,
// not a degrees-of-freedom-adjusted critical value.
const significanceThreshold = 2.0

// Comparison describes how one scenario's metric compares to the baseline.
type Comparison struct {
	// Improvement is scenario mean minus baseline mean.
	Improvement float64 `json:"improvement"`

	// ImprovementPct is Improvement/|baseline mean|*100, defined as 0 when
	// the baseline mean is 0.
	ImprovementPct float64 `json:"improvement_pct"`

	// TStatistic is the pooled-variance two-sample t-statistic.
	TStatistic float64 `json:"t_statistic"`

	// Significance is "significant" when |t| exceeds 2.0, else
	// "not_significant".
	Significance string `json:"significance"`
}

// Compare computes the baseline-vs-scenario comparison for one metric's
// final-year value sets.
func Compare(baseline, scenario []float64) (Comparison, error) {
	if len(baseline) == 0 || len(scenario) == 0 {
		return Comparison{}, errEmpty("compare")
	}

	baseMean, _ := Mean(baseline)
	scenMean, _ := Mean(scenario)

	c := Comparison{Improvement: scenMean - baseMean}
	if baseMean != 0 {
		c.ImprovementPct = c.Improvement / math.Abs(baseMean) * 100
	}

	c.TStatistic = tStatistic(baseline, scenario)
	if math.Abs(c.TStatistic) > significanceThreshold {
		c.Significance = Significant
	} else {
		c.Significance = NotSignificant
	}

	return c, nil
}

// tStatistic computes |mean1-mean2| / sqrt(pooledVar*(1/n1+1/n2)).
// A zero standard error yields t=0 for equal means; for unequal means with
// zero spread the difference is trivially separated, so t is reported as the
// threshold-crossing sentinel rather than an infinity (which would not
// survive JSON serialization of the run record).
func tStatistic(a, b []float64) float64 {
	n1, n2 := float64(len(a)), float64(len(b))
	mean1, _ := Mean(a)
	mean2, _ := Mean(b)
	diff := math.Abs(mean1 - mean2)

	var pooled float64
	if n1+n2 > 2 {
		pooled = ((n1-1)*sampleVariance(a, mean1) + (n2-1)*sampleVariance(b, mean2)) / (n1 + n2 - 2)
	}

	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	if se == 0 {
		if diff == 0 {
			return 0
		}
		return math.MaxFloat64
	}
	return diff / se
}

// sampleVariance returns the n-1 variance around a precomputed mean.
// Returns 0 for sets smaller than two values.
func sampleVariance(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values)-1)
}
