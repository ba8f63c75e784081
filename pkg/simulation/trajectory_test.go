package simulation

import (
	"math"
	"math/rand"
	"testing"

	"coralline-hq/tidecast/pkg/framework"
)

func testFramework() *framework.Framework {
	return &framework.Framework{
		ID:           "synthetic",
		Parameters:   []string{"effort"},
		Metrics:      []string{"habitat", "program_cost"},
		HorizonYears: 10,
		Profiles: map[string]framework.MetricProfile{
			"habitat": {
				BaseRate:        0.02,
				DefaultBaseline: 100,
				UncertaintyStd:  0.05,
				ParamEffects:    map[string]float64{"effort": 0.8},
			},
			"program_cost": {
				BaseRate:        0.01,
				DefaultBaseline: 40,
				UncertaintyStd:  0.03,
			},
		},
	}
}

func TestSimulate_TrajectoryLength(t *testing.T) {
	fw := testFramework()

	for _, horizon := range []int{0, 1, 5, 50} {
		rng := rand.New(rand.NewSource(1))
		trajectory := Simulate(fw, "habitat", nil, nil, horizon, rng)

		if len(trajectory) != horizon+1 {
			t.Fatalf("horizon %d: expected %d points, got %d", horizon, horizon+1, len(trajectory))
		}
		for i, p := range trajectory {
			if p.Year != i {
				t.Errorf("horizon %d: expected year %d at index %d, got %d", horizon, i, i, p.Year)
			}
		}
	}
}

func TestSimulate_StartsFromBaseline(t *testing.T) {
	fw := testFramework()
	rng := rand.New(rand.NewSource(7))

	trajectory := Simulate(fw, "habitat", BaselineData{"habitat": 50}, nil, 3, rng)

	// Year 0 applies one growth step to the explicit baseline.
	expected := 50 * (1 + trajectory[0].GrowthRate)
	if math.Abs(trajectory[0].Value-expected) > 1e-9 {
		t.Errorf("Expected year-0 value %v, got %v", expected, trajectory[0].Value)
	}
}

func TestSimulate_ValuesAreCumulative(t *testing.T) {
	fw := testFramework()
	rng := rand.New(rand.NewSource(11))

	trajectory := Simulate(fw, "habitat", nil, nil, 8, rng)

	value := fw.BaselineFor("habitat", nil)
	for _, p := range trajectory {
		value *= 1 + p.GrowthRate
		if math.Abs(p.Value-value) > 1e-9 {
			t.Fatalf("year %d: expected cumulative value %v, got %v", p.Year, value, p.Value)
		}
	}
}

func TestDiminishingReturns(t *testing.T) {
	// Strictly decreasing before the floor, never negative.
	prev := diminishingReturns(0)
	if prev != 1.0 {
		t.Errorf("Expected factor 1.0 at year 0, got %v", prev)
	}
	for year := 1; year < 45; year++ {
		f := diminishingReturns(year)
		if f >= prev {
			t.Errorf("year %d: factor %v not strictly decreasing from %v", year, f, prev)
		}
		if f < 0 {
			t.Errorf("year %d: negative factor %v", year, f)
		}
		prev = f
	}
	// Exactly 0.1 once year >= 45.
	for _, year := range []int{45, 46, 60, 100} {
		if f := diminishingReturns(year); f != 0.1 {
			t.Errorf("year %d: expected floor 0.1, got %v", year, f)
		}
	}
}

func TestRateForYear_InterventionDamping(t *testing.T) {
	fw := testFramework()
	intervention := map[string]float64{"effort": 0.5}

	// Adjusted base rate before damping and diminishing returns:
	// 0.02 * (1 + 0.5*0.8) = 0.028
	adjusted := 0.02 * (1 + 0.5*0.8)

	cases := []struct {
		year   int
		factor float64
	}{
		{0, 0.5},
		{2, 0.5},
		{3, 0.8},
		{4, 0.8},
		{5, 1.0},
		{10, 1.0},
	}
	for _, tc := range cases {
		expected := adjusted * tc.factor * diminishingReturns(tc.year)
		got := rateForYear(fw, "habitat", intervention, tc.year)
		if math.Abs(got-expected) > 1e-12 {
			t.Errorf("year %d: expected rate %v, got %v", tc.year, expected, got)
		}
	}
}

func TestRateForYear_NoDampingWithoutIntervention(t *testing.T) {
	fw := testFramework()

	for _, year := range []int{0, 1, 4} {
		expected := 0.02 * diminishingReturns(year)
		got := rateForYear(fw, "habitat", nil, year)
		if math.Abs(got-expected) > 1e-12 {
			t.Errorf("year %d: expected undamped rate %v, got %v", year, expected, got)
		}
	}
}

func TestRateForYear_UnknownParameterNotApplied(t *testing.T) {
	fw := testFramework()

	// "budget" has no declared effect on habitat, so the rate matches the
	// no-adjustment case apart from lag damping.
	got := rateForYear(fw, "habitat", map[string]float64{"budget": 5}, 0)
	expected := 0.02 * earlyLagFactor * diminishingReturns(0)
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected rate %v, got %v", expected, got)
	}
}

func TestSimulate_DeterministicWithSeed(t *testing.T) {
	fw := testFramework()

	a := Simulate(fw, "habitat", nil, nil, 10, rand.New(rand.NewSource(42)))
	b := Simulate(fw, "habitat", nil, nil, 10, rand.New(rand.NewSource(42)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("year %d: same seed produced different points: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestNormalDraw_Statistics(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const n = 200000
	const std = 0.05

	var sum, sumSq float64
	for i := 0; i < n; i++ {
		z := normalDraw(rng, std)
		sum += z
		sumSq += z * z
	}

	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean) > 0.001 {
		t.Errorf("Expected mean near 0, got %v", mean)
	}
	if math.Abs(math.Sqrt(variance)-std) > 0.002 {
		t.Errorf("Expected std near %v, got %v", std, math.Sqrt(variance))
	}
}
