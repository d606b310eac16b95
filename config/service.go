package config

import (
	"fmt"

	apperrors "github.com/kbukum/prodcon/errors"
	"github.com/kbukum/prodcon/logger"
)

// ServiceConfig contains the fields every command needs.
// Commands extend it by embedding it in their own config structs.
//
// Example:
//
//	type RunConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Pipeline PipelineSettings `yaml:"pipeline" mapstructure:"pipeline"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted
// so the embedding struct automatically satisfies bootstrap.Config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs that override it must call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	if c.Logging.Level == "debug" {
		c.Debug = true
	}
}

// Validate validates the base configuration fields.
// Embedding structs that override it must call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return apperrors.InvalidConfig("name", "is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return apperrors.InvalidConfig("environment",
			fmt.Sprintf("must be one of %v (got: %s)", validEnvs, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		return apperrors.InvalidConfig("logging", err.Error()).WithCause(err)
	}
	return nil
}
