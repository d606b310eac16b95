package logger

import (
	"fmt"
	"strings"
)

// Config contains logging configuration.
type Config struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Output      string `yaml:"output" mapstructure:"output"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// levelAliases maps the spellings accepted by the command line onto zerolog levels.
var levelAliases = map[string]string{
	"warning":  "warn",
	"critical": "fatal",
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	c.Level = NormalizeLevel(c.Level)
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "trace"}
	if !contains(validLevels, NormalizeLevel(c.Level)) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{"json", "console", "text", FormatPretty}
	if !contains(validFormats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	validOutputs := []string{"stdout", "stderr", ""}
	if !contains(validOutputs, strings.ToLower(c.Output)) {
		return fmt.Errorf("logging.output must be one of [stdout stderr] (got: %s)", c.Output)
	}
	return nil
}

// NormalizeLevel lower-cases a level name and resolves the WARNING and
// CRITICAL aliases.
func NormalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if alias, ok := levelAliases[level]; ok {
		return alias
	}
	return level
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
