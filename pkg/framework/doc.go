// Package framework provides the catalog of conservation policy frameworks.
//
// # Overview
//
// A policy framework declares the tunable intervention parameters, the
// outcome metrics, and the simulation time horizon for one class of
// conservation policy (marine protected area expansion, fisheries quotas,
// coastal restoration, blue carbon credits). Frameworks also carry the
// per-metric model coefficients the trajectory simulator needs: base annual
// growth rates, default baselines, uncertainty standard deviations, and
// parameter effect sizes.
//
// The catalog is immutable configuration: it is constructed once at startup
// (built-in defaults, optionally merged with a YAML catalog file) and passed
// explicitly into the simulator and the Monte Carlo engine. There is no
// ambient global registry.
//
// # Usage
//
//	registry := framework.Builtin()
//	fw, err := registry.Get("mpa_expansion")
//	if err != nil {
//	    // unknown framework
//	}
//
// Model coefficients are illustrative and not calibrated against field data.
package framework
