package simulation

import (
	"math"
	"testing"
)

// flatTrajectory builds a trajectory holding a constant value every year.
func flatTrajectory(value float64, horizon int) Trajectory {
	trajectory := make(Trajectory, 0, horizon+1)
	for year := 0; year <= horizon; year++ {
		trajectory = append(trajectory, Point{Year: year, Value: value})
	}
	return trajectory
}

func discountedSum(value float64, horizon int) float64 {
	var sum float64
	for year := 0; year <= horizon; year++ {
		sum += value / math.Pow(1+DiscountRate, float64(year))
	}
	return sum
}

func TestValuate_SignByMetricClass(t *testing.T) {
	const horizon = 4
	trajectories := map[string]Trajectory{
		"habitat":      flatTrajectory(100, horizon),
		"program_cost": flatTrajectory(30, horizon),
	}

	npv, _ := Valuate(trajectories, horizon)

	expected := discountedSum(100, horizon) - discountedSum(30, horizon)
	if math.Abs(npv-expected) > 1e-9 {
		t.Errorf("Expected NPV %v, got %v", expected, npv)
	}

	// Swapping which metric carries the "cost" name flips the sign
	// contribution of each value.
	flipped := map[string]Trajectory{
		"habitat_cost": flatTrajectory(100, horizon),
		"program":      flatTrajectory(30, horizon),
	}
	npvFlipped, _ := Valuate(flipped, horizon)
	expectedFlipped := discountedSum(30, horizon) - discountedSum(100, horizon)
	if math.Abs(npvFlipped-expectedFlipped) > 1e-9 {
		t.Errorf("Expected flipped NPV %v, got %v", expectedFlipped, npvFlipped)
	}
}

func TestValuate_BCRFinalYearOnly(t *testing.T) {
	const horizon = 3
	benefit := flatTrajectory(10, horizon)
	benefit[horizon].Value = 90
	cost := flatTrajectory(100, horizon)
	cost[horizon].Value = 30

	_, bcr := Valuate(map[string]Trajectory{
		"revenue":      benefit,
		"program_cost": cost,
	}, horizon)

	// Only the final year matters: 90 / 30.
	if math.Abs(bcr-3.0) > 1e-9 {
		t.Errorf("Expected BCR 3.0, got %v", bcr)
	}
}

func TestValuate_BCRDefaultsWithoutCost(t *testing.T) {
	const horizon = 2
	_, bcr := Valuate(map[string]Trajectory{
		"habitat": flatTrajectory(100, horizon),
		"revenue": flatTrajectory(50, horizon),
	}, horizon)

	if bcr != 1.0 {
		t.Errorf("Expected default BCR 1.0 when no cost metric, got %v", bcr)
	}
}

func TestIsCostMetric(t *testing.T) {
	cases := map[string]bool{
		"management_cost": true,
		"cost_avoidance":  true, // known substring-match limitation
		"revenue":         false,
		"biodiversity":    false,
	}
	for metric, expected := range cases {
		if got := IsCostMetric(metric); got != expected {
			t.Errorf("IsCostMetric(%q): expected %v, got %v", metric, expected, got)
		}
	}
}
