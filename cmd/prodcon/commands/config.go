package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/prodcon/buffer"
	"github.com/kbukum/prodcon/config"
	"github.com/kbukum/prodcon/pipeline"
	"github.com/kbukum/prodcon/validation"
	"github.com/kbukum/prodcon/version"
)

// PipelineSettings is the pipeline section of the run config.
type PipelineSettings struct {
	Buffer        string        `yaml:"buffer" mapstructure:"buffer" validate:"oneof=queue condition"`
	Capacity      int           `yaml:"capacity" mapstructure:"capacity" validate:"gt=0"`
	Items         int           `yaml:"items" mapstructure:"items" validate:"gte=0"`
	Producers     int           `yaml:"producers" mapstructure:"producers" validate:"min=1"`
	Consumers     int           `yaml:"consumers" mapstructure:"consumers" validate:"min=1"`
	ProducerDelay time.Duration `yaml:"producer_delay" mapstructure:"producer_delay" validate:"gte=0"`
	ConsumerDelay time.Duration `yaml:"consumer_delay" mapstructure:"consumer_delay" validate:"gte=0"`
}

// OutputSettings controls what the run prints and logs.
type OutputSettings struct {
	Format  string `yaml:"format" mapstructure:"format" validate:"oneof=text json yaml"`
	Metrics bool   `yaml:"metrics" mapstructure:"metrics"`
	Trace   bool   `yaml:"trace" mapstructure:"trace"`
}

// RunConfig is the full configuration of a pipeline run.
type RunConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pipeline             PipelineSettings `yaml:"pipeline" mapstructure:"pipeline"`
	Output               OutputSettings   `yaml:"output" mapstructure:"output"`
}

// ApplyDefaults normalizes case-insensitive settings after the base
// defaults.
func (c *RunConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Pipeline.Buffer = strings.ToLower(strings.TrimSpace(c.Pipeline.Buffer))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
}

// Validate checks the service section, then the tagged fields.
func (c *RunConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// PipelineConfig converts the settings for pipeline.New.
func (c *RunConfig) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Buffer:        buffer.Kind(c.Pipeline.Buffer),
		Capacity:      c.Pipeline.Capacity,
		Producers:     c.Pipeline.Producers,
		Consumers:     c.Pipeline.Consumers,
		ProducerDelay: c.Pipeline.ProducerDelay,
		ConsumerDelay: c.Pipeline.ConsumerDelay,
	}
}

// defaults registers every key so environment variables can reach it.
func defaults() map[string]interface{} {
	d := pipeline.DefaultConfig()
	return map[string]interface{}{
		"name":                    appName,
		"environment":             "development",
		"version":                 version.Short(),
		"debug":                   false,
		"logging.level":           "info",
		"logging.format":          "console",
		"logging.output":          "stderr",
		"logging.no_color":        false,
		"pipeline.buffer":         d.Buffer.String(),
		"pipeline.capacity":       d.Capacity,
		"pipeline.items":          5,
		"pipeline.producers":      d.Producers,
		"pipeline.consumers":      d.Consumers,
		"pipeline.producer_delay": d.ProducerDelay.String(),
		"pipeline.consumer_delay": d.ConsumerDelay.String(),
		"output.format":           "text",
		"output.metrics":          false,
		"output.trace":            false,
	}
}

// flagKeys maps config keys to the root command's persistent flags.
var flagKeys = map[string]string{
	"debug":                   "debug",
	"pipeline.buffer":         "buffer",
	"pipeline.capacity":       "capacity",
	"pipeline.items":          "items",
	"pipeline.producers":      "producers",
	"pipeline.consumers":      "consumers",
	"pipeline.producer_delay": "producer-delay",
	"pipeline.consumer_delay": "consumer-delay",
	"logging.level":           "log-level",
	"output.format":           "format",
	"output.metrics":          "metrics",
	"output.trace":            "trace",
}

// loadRunConfig resolves the run config from flags, PRODCON_* environment
// variables (including an env file), the config file and defaults.
func loadRunConfig(cmd *cobra.Command, ro *rootOptions) (*RunConfig, error) {
	opts := []config.LoaderOption{config.WithDefaults(defaults())}
	if ro.configFile != "" {
		opts = append(opts, config.WithConfigFile(ro.configFile))
	}
	if ro.envFile != "" {
		opts = append(opts, config.WithEnvFile(ro.envFile))
	}
	for key, name := range flagKeys {
		opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(name)))
	}

	cfg := &RunConfig{}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
