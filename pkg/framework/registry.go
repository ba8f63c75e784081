package framework

import "fmt"

// NotFoundError indicates a lookup for an unknown framework ID.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown policy framework %q", e.ID)
}

// Registry is an immutable catalog of policy frameworks. It is constructed
// once at startup and safe for concurrent use without locking.
type Registry struct {
	frameworks map[string]*Framework
	order      []string
}

// NewRegistry builds a registry from the given frameworks. Later entries
// override earlier entries with the same ID, which lets a file-based catalog
// shadow the built-in definitions.
func NewRegistry(frameworks ...*Framework) (*Registry, error) {
	r := &Registry{frameworks: make(map[string]*Framework, len(frameworks))}
	for _, fw := range frameworks {
		if fw.ID == "" {
			return nil, fmt.Errorf("framework ID cannot be empty")
		}
		if len(fw.Metrics) == 0 {
			return nil, fmt.Errorf("framework %q declares no outcome metrics", fw.ID)
		}
		if fw.HorizonYears < 0 {
			return nil, fmt.Errorf("framework %q has negative horizon %d", fw.ID, fw.HorizonYears)
		}
		if _, exists := r.frameworks[fw.ID]; !exists {
			r.order = append(r.order, fw.ID)
		}
		r.frameworks[fw.ID] = fw
	}
	return r, nil
}

// Get returns the framework with the given ID, or a *NotFoundError.
func (r *Registry) Get(id string) (*Framework, error) {
	fw, ok := r.frameworks[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return fw, nil
}

// List returns all frameworks in registration order.
func (r *Registry) List() []*Framework {
	out := make([]*Framework, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.frameworks[id])
	}
	return out
}

// Builtin returns the registry of built-in policy frameworks.
func Builtin() *Registry {
	r, err := NewRegistry(builtinFrameworks()...)
	if err != nil {
		// The built-in catalog is compiled in; a construction failure is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return r
}

// builtinFrameworks defines the compiled-in policy framework catalog.
// Coefficients are illustrative, not scientifically calibrated.
func builtinFrameworks() []*Framework {
	return []*Framework{
		{
			ID:           "mpa_expansion",
			Name:         "Marine Protected Area Expansion",
			Parameters:   []string{"expansion_rate", "enforcement_level", "community_engagement"},
			Metrics:      []string{"biodiversity_recovery", "fish_biomass", "tourism_revenue", "management_cost"},
			HorizonYears: 20,
			Profiles: map[string]MetricProfile{
				"biodiversity_recovery": {
					BaseRate:        0.020,
					DefaultBaseline: 0.5,
					UncertaintyStd:  0.05,
					ParamEffects:    map[string]float64{"expansion_rate": 0.8, "enforcement_level": 0.4},
				},
				"fish_biomass": {
					BaseRate:        0.030,
					DefaultBaseline: 100,
					UncertaintyStd:  0.07,
					ParamEffects:    map[string]float64{"expansion_rate": 0.6, "enforcement_level": 0.5},
				},
				"tourism_revenue": {
					BaseRate:        0.025,
					DefaultBaseline: 250,
					UncertaintyStd:  0.08,
					ParamEffects:    map[string]float64{"expansion_rate": 0.3, "community_engagement": 0.5},
				},
				"management_cost": {
					BaseRate:        0.015,
					DefaultBaseline: 40,
					UncertaintyStd:  0.04,
					ParamEffects:    map[string]float64{"expansion_rate": 0.5, "enforcement_level": 0.6},
				},
			},
		},
		{
			ID:           "fisheries_quota",
			Name:         "Fisheries Quota Reform",
			Parameters:   []string{"quota_reduction", "bycatch_limit", "observer_coverage"},
			Metrics:      []string{"stock_health", "catch_value", "monitoring_cost"},
			HorizonYears: 15,
			Profiles: map[string]MetricProfile{
				"stock_health": {
					BaseRate:        0.015,
					DefaultBaseline: 0.6,
					UncertaintyStd:  0.06,
					ParamEffects:    map[string]float64{"quota_reduction": 0.9, "bycatch_limit": 0.3},
				},
				"catch_value": {
					BaseRate:        0.010,
					DefaultBaseline: 500,
					UncertaintyStd:  0.08,
					// Tighter quotas depress near-term landings.
					ParamEffects: map[string]float64{"quota_reduction": -0.4, "observer_coverage": 0.1},
				},
				"monitoring_cost": {
					BaseRate:        0.020,
					DefaultBaseline: 60,
					UncertaintyStd:  0.03,
					ParamEffects:    map[string]float64{"observer_coverage": 0.7},
				},
			},
		},
		{
			ID:           "coastal_restoration",
			Name:         "Coastal Habitat Restoration",
			Parameters:   []string{"restoration_area", "mangrove_density", "community_engagement"},
			Metrics:      []string{"habitat_extent", "storm_protection_value", "carbon_sequestration", "restoration_cost"},
			HorizonYears: 25,
			Profiles: map[string]MetricProfile{
				"habitat_extent": {
					BaseRate:        0.025,
					DefaultBaseline: 120,
					UncertaintyStd:  0.05,
					ParamEffects:    map[string]float64{"restoration_area": 0.7, "mangrove_density": 0.4},
				},
				"storm_protection_value": {
					BaseRate:        0.020,
					DefaultBaseline: 300,
					UncertaintyStd:  0.06,
					ParamEffects:    map[string]float64{"restoration_area": 0.5, "mangrove_density": 0.6},
				},
				"carbon_sequestration": {
					BaseRate:        0.030,
					DefaultBaseline: 80,
					UncertaintyStd:  0.05,
					ParamEffects:    map[string]float64{"mangrove_density": 0.8},
				},
				"restoration_cost": {
					BaseRate:        0.010,
					DefaultBaseline: 150,
					UncertaintyStd:  0.03,
					ParamEffects:    map[string]float64{"restoration_area": 0.8},
				},
			},
		},
		{
			ID:           "carbon_blue",
			Name:         "Blue Carbon Credit Program",
			Parameters:   []string{"protected_hectares", "credit_price", "verification_rate"},
			Metrics:      []string{"carbon_sequestration", "credit_revenue", "verification_cost"},
			HorizonYears: 30,
			Profiles: map[string]MetricProfile{
				"carbon_sequestration": {
					BaseRate:        0.028,
					DefaultBaseline: 200,
					UncertaintyStd:  0.055,
					ParamEffects:    map[string]float64{"protected_hectares": 0.7},
				},
				"credit_revenue": {
					BaseRate:        0.022,
					DefaultBaseline: 180,
					UncertaintyStd:  0.09,
					ParamEffects:    map[string]float64{"protected_hectares": 0.4, "credit_price": 0.6},
				},
				"verification_cost": {
					BaseRate:        0.012,
					DefaultBaseline: 45,
					UncertaintyStd:  0.035,
					ParamEffects:    map[string]float64{"verification_rate": 0.8, "protected_hectares": 0.3},
				},
			},
		},
	}
}
