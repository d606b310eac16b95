package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/prodcon/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "prodcon", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().Required("name", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorMin(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{3, false},
		{-1, true},
	}
	for _, tc := range tests {
		v := New().Min("producers", tc.value, 1)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("Min(%d, 1): HasErrors() = %v, want %v", tc.value, v.HasErrors(), tc.wantErr)
		}
	}
}

func TestValidatorPositive(t *testing.T) {
	if New().Positive("capacity", 1).HasErrors() {
		t.Error("expected 1 to be positive")
	}
	v := New().Positive("capacity", 0)
	if !v.HasErrors() {
		t.Fatal("expected 0 to be rejected")
	}
	if !strings.Contains(v.Errors()[0].Message, "got 0") {
		t.Errorf("expected message to carry the value, got %q", v.Errors()[0].Message)
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"queue", "condition"}
	if New().OneOf("buffer", "queue", allowed).HasErrors() {
		t.Error("expected 'queue' to be allowed")
	}
	if !New().OneOf("buffer", "ring", allowed).HasErrors() {
		t.Error("expected 'ring' to be rejected")
	}
	if !New().OneOf("buffer", "", allowed).HasErrors() {
		t.Error("expected empty value to be rejected")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().
		Custom(true, "producer_delay", "must not be negative").
		Custom(false, "consumer_delay", "must not be negative")
	if len(v.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(v.Errors()))
	}
	if v.Errors()[0].Field != "consumer_delay" {
		t.Errorf("expected consumer_delay, got %q", v.Errors()[0].Field)
	}
}

func TestValidatorValidate(t *testing.T) {
	if err := New().Min("consumers", 2, 1).Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := New().
		Positive("capacity", 0).
		Min("consumers", 0, 1).
		Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err.Code != errors.ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", err.Code)
	}
	if err.Details["field"] != "capacity" {
		t.Errorf("expected first field 'capacity', got %v", err.Details["field"])
	}
	fields, ok := err.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", err.Details["fields"])
	}
	if !strings.Contains(err.Message, "capacity: must be positive") ||
		!strings.Contains(err.Message, "consumers: must be at least 1") {
		t.Errorf("unexpected message %q", err.Message)
	}
}

type settings struct {
	Buffer        string        `mapstructure:"buffer" validate:"oneof=queue condition"`
	Capacity      int           `mapstructure:"capacity" validate:"gt=0"`
	Producers     int           `mapstructure:"producers" validate:"min=1"`
	ConsumerDelay time.Duration `mapstructure:"consumer_delay" validate:"gte=0"`
	Label         string        `validate:"required"`
}

func validSettings() settings {
	return settings{Buffer: "queue", Capacity: 2, Producers: 1, Label: "x"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*settings)
		wantField string
	}{
		{"valid", func(*settings) {}, ""},
		{"unknown buffer", func(s *settings) { s.Buffer = "ring" }, "buffer"},
		{"zero capacity", func(s *settings) { s.Capacity = 0 }, "capacity"},
		{"negative capacity", func(s *settings) { s.Capacity = -3 }, "capacity"},
		{"no producers", func(s *settings) { s.Producers = 0 }, "producers"},
		{"negative delay", func(s *settings) { s.ConsumerDelay = -time.Millisecond }, "consumer_delay"},
		{"missing label uses snake_case", func(s *settings) { s.Label = "" }, "label"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			err := Validate(s)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected *AppError, got %v", err)
			}
			if appErr.Code != errors.ErrCodeInvalidConfig {
				t.Errorf("expected INVALID_CONFIG, got %s", appErr.Code)
			}
			if appErr.Details["field"] != tc.wantField {
				t.Errorf("field = %v, want %q", appErr.Details["field"], tc.wantField)
			}
		})
	}
}

func TestValidateStructMessage(t *testing.T) {
	s := validSettings()
	s.Buffer = "ring"
	err := Validate(s)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "must be one of: queue, condition (got ring)") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidateNonStruct(t *testing.T) {
	err := Validate(42)
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG for a non-struct, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Capacity":      "capacity",
		"ConsumerDelay": "consumer_delay",
		"ID":            "i_d",
		"":              "",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
