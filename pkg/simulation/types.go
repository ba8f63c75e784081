package simulation

// BaselineData maps an outcome metric name to its starting value. Metrics
// absent from the map fall back to the framework's per-metric default
// baseline.
type BaselineData map[string]float64

// Point is one year of a simulated trajectory.
type Point struct {
	// Year is the simulation year, 0..horizon.
	Year int `json:"year"`

	// Value is the cumulative metric value at the end of the year.
	Value float64 `json:"value"`

	// GrowthRate is the adjusted growth rate applied this year, after
	// intervention adjustment, damping, diminishing returns, and the
	// uncertainty perturbation.
	GrowthRate float64 `json:"growth_rate"`

	// Uncertainty is the normal draw applied to the growth rate this year.
	Uncertainty float64 `json:"uncertainty"`
}

// Trajectory is the ordered year-by-year path of one metric in one trial.
// Its length is always horizon+1, covering years 0..horizon inclusive.
type Trajectory []Point

// FinalValue returns the metric value at the last simulated year.
// Returns 0 for an empty trajectory.
func (t Trajectory) FinalValue() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Value
}

// TrialOutcome is the result of one independent Monte Carlo trial: one
// trajectory per framework metric plus the derived economic scalars.
type TrialOutcome struct {
	// Trajectories maps every framework metric name to its trajectory.
	Trajectories map[string]Trajectory `json:"trajectories"`

	// NPV is the net present value computed across all trajectories.
	NPV float64 `json:"npv"`

	// BCR is the final-year benefit-cost ratio.
	BCR float64 `json:"bcr"`
}

// ResultSet is the ordered collection of trial outcomes for one scenario
// (the baseline or one named intervention), exactly one entry per iteration.
type ResultSet []TrialOutcome

// FinalValues collects the final-year values of one metric across all trials.
func (rs ResultSet) FinalValues(metric string) []float64 {
	values := make([]float64, 0, len(rs))
	for _, trial := range rs {
		values = append(values, trial.Trajectories[metric].FinalValue())
	}
	return values
}

// NPVs collects the net present value of every trial.
func (rs ResultSet) NPVs() []float64 {
	values := make([]float64, 0, len(rs))
	for _, trial := range rs {
		values = append(values, trial.NPV)
	}
	return values
}

// BCRs collects the benefit-cost ratio of every trial.
func (rs ResultSet) BCRs() []float64 {
	values := make([]float64, 0, len(rs))
	for _, trial := range rs {
		values = append(values, trial.BCR)
	}
	return values
}
