// Package config provides configuration loading and validation for
// Tidecast.
//
// # Overview
//
// Configuration is a YAML file deserialized into the Config struct, with
// defaults applied for omitted fields and environment variable overrides
// layered on top. Environment variables follow the TIDECAST_SECTION_FIELD
// convention and always win over the file.
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("tidecast.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Validation
//
// Validate collects every rule violation into a single ValidationError so
// operators see all problems at once instead of fixing them one restart at
// a time.
package config
