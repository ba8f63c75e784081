package framework

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML shape of an external framework catalog.
type catalogFile struct {
	Frameworks []*Framework `yaml:"frameworks"`
}

// LoadCatalog parses a YAML framework catalog file.
//
// The file holds a top-level "frameworks" list; each entry uses the same
// field names as the Framework struct:
//
//	frameworks:
//	  - id: kelp_recovery
//	    name: Kelp Forest Recovery
//	    parameters: [urchin_removal]
//	    metrics: [canopy_cover, restoration_cost]
//	    horizon_years: 12
//	    profiles:
//	      canopy_cover:
//	        base_rate: 0.04
//	        default_baseline: 30
//	        param_effects:
//	          urchin_removal: 0.9
func LoadCatalog(path string) ([]*Framework, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read framework catalog %q: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse framework catalog %q: %w", path, err)
	}

	for _, fw := range file.Frameworks {
		if fw.ID == "" {
			return nil, fmt.Errorf("framework catalog %q contains an entry without an id", path)
		}
	}

	return file.Frameworks, nil
}

// LoadRegistry builds a registry from the built-in catalog merged with an
// optional YAML catalog file. File entries override built-ins with the same
// ID. An empty path returns the built-in registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return Builtin(), nil
	}

	loaded, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}

	return NewRegistry(append(builtinFrameworks(), loaded...)...)
}
