package framework

// Default model coefficients applied when a metric profile leaves a field
// undeclared.
const (
	// DefaultBaseRate is the annual growth rate for metrics without a
	// declared base rate.
	DefaultBaseRate = 0.01

	// DefaultUncertaintyStd is the standard deviation of the annual
	// uncertainty draw for metrics without a declared value.
	DefaultUncertaintyStd = 0.05

	// DefaultBaseline is the starting value for metrics without a declared
	// default baseline.
	DefaultBaseline = 1.0
)

// Framework describes one policy framework: its tunable intervention
// parameters, its outcome metrics, the simulation time horizon, and the
// per-metric model coefficients. A Framework is immutable after construction.
type Framework struct {
	// ID is the unique framework identifier (e.g., "mpa_expansion").
	ID string `yaml:"id" json:"id"`

	// Name is the human-readable display name.
	Name string `yaml:"name" json:"name"`

	// Parameters lists the intervention parameter names in declaration order.
	Parameters []string `yaml:"parameters" json:"parameters"`

	// Metrics lists the outcome metric names in declaration order. Metric
	// names containing the substring "cost" are treated as costs by the
	// economic valuation.
	Metrics []string `yaml:"metrics" json:"metrics"`

	// HorizonYears is the default simulation time horizon in years.
	HorizonYears int `yaml:"horizon_years" json:"horizon_years"`

	// Profiles maps each metric name to its model coefficients. Metrics
	// without an entry use the package defaults.
	Profiles map[string]MetricProfile `yaml:"profiles" json:"profiles"`
}

// MetricProfile holds the model coefficients for one outcome metric.
// Zero-valued fields mean "undeclared" and fall back to the package defaults.
type MetricProfile struct {
	// BaseRate is the base annual growth rate before intervention
	// adjustment. Default: 0.01
	BaseRate float64 `yaml:"base_rate" json:"base_rate"`

	// DefaultBaseline is the starting value used when the request's
	// baseline data omits this metric. Default: 1.0
	DefaultBaseline float64 `yaml:"default_baseline" json:"default_baseline"`

	// UncertaintyStd is the standard deviation of the normal uncertainty
	// draw applied each simulated year. Default: 0.05
	UncertaintyStd float64 `yaml:"uncertainty_std" json:"uncertainty_std"`

	// ParamEffects maps an intervention parameter name to its proportional
	// effect on the growth rate. A parameter value v with effect e scales
	// the rate by (1 + v*e); negative effects model rate-suppressing
	// parameters. Parameters absent from the intervention are not applied.
	ParamEffects map[string]float64 `yaml:"param_effects" json:"param_effects"`
}

// BaseRate returns the base annual growth rate for a metric, falling back
// to DefaultBaseRate when undeclared.
func (f *Framework) BaseRate(metric string) float64 {
	if p, ok := f.Profiles[metric]; ok && p.BaseRate != 0 {
		return p.BaseRate
	}
	return DefaultBaseRate
}

// UncertaintyStd returns the uncertainty standard deviation for a metric,
// falling back to DefaultUncertaintyStd when undeclared.
func (f *Framework) UncertaintyStd(metric string) float64 {
	if p, ok := f.Profiles[metric]; ok && p.UncertaintyStd != 0 {
		return p.UncertaintyStd
	}
	return DefaultUncertaintyStd
}

// BaselineFor returns the starting value for a metric: the explicit value
// from the request's baseline data when present, otherwise the metric's
// declared default baseline, otherwise DefaultBaseline.
func (f *Framework) BaselineFor(metric string, baseline map[string]float64) float64 {
	if v, ok := baseline[metric]; ok {
		return v
	}
	if p, ok := f.Profiles[metric]; ok && p.DefaultBaseline != 0 {
		return p.DefaultBaseline
	}
	return DefaultBaseline
}

// ParamEffects returns the parameter effect table for a metric. The returned
// map must not be mutated. Returns nil when the metric has no declared
// effects.
func (f *Framework) ParamEffects(metric string) map[string]float64 {
	if p, ok := f.Profiles[metric]; ok {
		return p.ParamEffects
	}
	return nil
}

// HasMetric reports whether the framework declares the given outcome metric.
func (f *Framework) HasMetric(metric string) bool {
	for _, m := range f.Metrics {
		if m == metric {
			return true
		}
	}
	return false
}
