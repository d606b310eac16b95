// Package config loads layered configuration into a caller-supplied struct.
//
// Values come from defaults, a YAML file, environment variables (optionally
// seeded from a .env file) and command-line flags, in increasing order of
// precedence. Environment variables use the upper-cased service name as a
// prefix with dots replaced by underscores:
//
//	var cfg MyConfig
//	err := config.LoadConfig("prodcon", &cfg,
//	    config.WithDefaults(map[string]interface{}{"pipeline.capacity": 2}),
//	    config.WithFlag("pipeline.capacity", cmd.Flags().Lookup("capacity")),
//	)
//
// Here PRODCON_PIPELINE_CAPACITY overrides the file and the default, and an
// explicitly passed --capacity overrides everything.
package config
