// Package validation checks configuration values and reports failures as
// INVALID_CONFIG application errors.
//
// Struct tag validation (go-playground/validator) suits decoded config
// structs:
//
//	type PipelineSettings struct {
//	    Capacity int    `mapstructure:"capacity" validate:"gt=0"`
//	    Buffer   string `mapstructure:"buffer" validate:"oneof=queue condition"`
//	}
//	err := validation.Validate(settings)
//
// The fluent Validator collects errors from hand-written checks:
//
//	err := validation.New().
//	    Min("producers", cfg.Producers, 1).
//	    Custom(cfg.Delay >= 0, "delay", "must not be negative").
//	    Validate()
package validation
