package stats

import (
	"math"
	"testing"
)

func TestCompare_ImprovementPctZeroBaseline(t *testing.T) {
	baseline := []float64{-1, 1, -2, 2} // mean 0
	scenario := []float64{5, 6, 7, 8}

	c, err := Compare(baseline, scenario)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if c.ImprovementPct != 0 {
		t.Errorf("Expected improvement pct 0 for zero baseline mean, got %v", c.ImprovementPct)
	}
	if c.Improvement != 6.5 {
		t.Errorf("Expected improvement 6.5, got %v", c.Improvement)
	}
}

func TestCompare_ImprovementPct(t *testing.T) {
	baseline := []float64{10, 10, 10, 10}
	scenario := []float64{12, 12, 13, 11}

	c, err := Compare(baseline, scenario)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if math.Abs(c.Improvement-2) > 1e-9 {
		t.Errorf("Expected improvement 2, got %v", c.Improvement)
	}
	if math.Abs(c.ImprovementPct-20) > 1e-9 {
		t.Errorf("Expected improvement pct 20, got %v", c.ImprovementPct)
	}
}

// shiftedGroups builds two same-spread groups whose means sit the given
// number of standard errors apart.
func shiftedGroups(n int, std, standardErrors float64) (a, b []float64) {
	a = make([]float64, n)
	b = make([]float64, n)
	// Alternate ±std around the group mean so the sample std is exactly
	// std*sqrt(n/(n-1)), close enough for threshold separation.
	se := std * math.Sqrt(2/float64(n))
	shift := standardErrors * se
	for i := 0; i < n; i++ {
		offset := std
		if i%2 == 1 {
			offset = -std
		}
		a[i] = 100 + offset
		b[i] = 100 + shift + offset
	}
	return a, b
}

func TestCompare_SignificanceLabels(t *testing.T) {
	// Means three standard errors apart → |t| ≈ 3 > 2.
	a, b := shiftedGroups(100, 5, 3)
	c, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if c.Significance != Significant {
		t.Errorf("Expected %q for 3-SE separation (t=%v), got %q", Significant, c.TStatistic, c.Significance)
	}

	// Equal means → t = 0 → not significant.
	equal, err := Compare(a, a)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if equal.TStatistic != 0 {
		t.Errorf("Expected t 0 for identical groups, got %v", equal.TStatistic)
	}
	if equal.Significance != NotSignificant {
		t.Errorf("Expected %q for equal means, got %q", NotSignificant, equal.Significance)
	}
}

func TestCompare_ZeroSpreadUnequalMeans(t *testing.T) {
	c, err := Compare([]float64{1, 1, 1}, []float64{2, 2, 2})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if c.Significance != Significant {
		t.Errorf("Expected %q for separated constant groups, got %q", Significant, c.Significance)
	}
	if math.IsInf(c.TStatistic, 0) || math.IsNaN(c.TStatistic) {
		t.Errorf("t-statistic must stay finite for JSON serialization, got %v", c.TStatistic)
	}
}

func TestCompare_EmptyInput(t *testing.T) {
	if _, err := Compare(nil, []float64{1}); err == nil {
		t.Error("Expected error for empty baseline")
	}
	if _, err := Compare([]float64{1}, nil); err == nil {
		t.Error("Expected error for empty scenario")
	}
}
