package stats

import (
	"fmt"
	"math"
	"sort"
)

// ComputationError indicates a statistic could not be computed, typically
// because the input value set is degenerate (empty).
type ComputationError struct {
	Op      string // statistic being computed ("mean", "percentile", ...)
	Message string
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error [%s]: %s", e.Op, e.Message)
}

func errEmpty(op string) error {
	return &ComputationError{Op: op, Message: "empty value set"}
}

// Mean returns the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errEmpty("mean")
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, errEmpty("stddev")
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values))), nil
}

// Percentile returns the p-th percentile (0..100) using linear interpolation
// between closest ranks: index = p/100 * (n-1).
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, errEmpty("percentile")
	}
	if p < 0 || p > 100 {
		return 0, &ComputationError{Op: "percentile", Message: fmt.Sprintf("percentile %v out of range [0,100]", p)}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower], nil
	}
	frac := index - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower]), nil
}

// Median returns the 50th percentile.
func Median(values []float64) (float64, error) {
	return Percentile(values, 50)
}

// Min returns the smallest value.
func Min(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errEmpty("min")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

// Max returns the largest value.
func Max(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errEmpty("max")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// Summary holds the per-metric summary statistics for one scenario,
// computed over the final-year value of every trial.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P5     float64 `json:"p5"`
	P95    float64 `json:"p95"`
}

// Summarize computes the full summary for one value set.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errEmpty("summarize")
	}

	var s Summary
	// Errors below are unreachable once the set is known non-empty.
	s.Mean, _ = Mean(values)
	s.Median, _ = Median(values)
	s.StdDev, _ = StdDev(values)
	s.Min, _ = Min(values)
	s.Max, _ = Max(values)
	s.P5, _ = Percentile(values, 5)
	s.P95, _ = Percentile(values, 95)
	return s, nil
}

// Interval is a percentile-band confidence interval.
type Interval struct {
	// Lower and Upper are the 5th and 95th percentile of the value set.
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`

	// Confidence is the nominal band width, always 0.90.
	Confidence float64 `json:"confidence"`
}

// ConfidenceInterval returns the [5th, 95th] percentile band, labeled as the
// 90% interval.
func ConfidenceInterval(values []float64) (Interval, error) {
	lower, err := Percentile(values, 5)
	if err != nil {
		return Interval{}, err
	}
	upper, _ := Percentile(values, 95)
	return Interval{Lower: lower, Upper: upper, Confidence: 0.90}, nil
}
