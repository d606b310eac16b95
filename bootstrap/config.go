package bootstrap

import (
	"github.com/kbukum/prodcon/config"
)

// Config is the constraint for command configuration types.
// Any struct that embeds config.ServiceConfig satisfies it through promoted
// methods; structs that add sections override ApplyDefaults and Validate and
// call the embedded versions first.
//
//	type RunConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Pipeline PipelineSettings `yaml:"pipeline" mapstructure:"pipeline"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
