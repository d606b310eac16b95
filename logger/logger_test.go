package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNew(t *testing.T) {
	cfg := &Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "my-service")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "my-service" {
		t.Errorf("expected service 'my-service', got %q", l.service)
	}
	if !l.DebugEnabled() {
		t.Error("expected debug to be enabled at level debug")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
	if l.DebugEnabled() {
		t.Error("invalid level should fall back to info")
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "prodcon", &buf)

	l.WithComponent("consumer").
		WithFields(Fields(FieldWorker, 2)).
		Info("consumer stopped", Fields(FieldItem, 7))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "consumer" {
		t.Errorf("expected component=consumer, got %v", entry[FieldComponent])
	}
	if entry[FieldWorker] != float64(2) {
		t.Errorf("expected worker=2, got %v", entry[FieldWorker])
	}
	if entry[FieldItem] != float64(7) {
		t.Errorf("expected item=7, got %v", entry[FieldItem])
	}
	if entry["message"] != "consumer stopped" {
		t.Errorf("expected message, got %v", entry["message"])
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"WARNING", false, false, true},
		{"critical", false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(&Config{Level: tc.level, Format: "json"}, "test", &buf)
			l.Debug("d-msg")
			l.Info("i-msg")
			l.Warn("w-msg")

			out := buf.String()
			if got := strings.Contains(out, "d-msg"); got != tc.debugSeen {
				t.Errorf("debug seen = %v, want %v", got, tc.debugSeen)
			}
			if got := strings.Contains(out, "i-msg"); got != tc.infoSeen {
				t.Errorf("info seen = %v, want %v", got, tc.infoSeen)
			}
			if got := strings.Contains(out, "w-msg"); got != tc.warnSeen {
				t.Errorf("warn seen = %v, want %v", got, tc.warnSeen)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "console",
		NoColor: true,
	}
	l := NewWithWriter(cfg, "prodcon", &buf)
	l.Info("pipeline done", Fields("items", 3))

	out := buf.String()
	if !strings.Contains(out, "[PRO][INF]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if !strings.Contains(out, "items:3") {
		t.Errorf("expected field rendering, got %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("dropped")
	if l.DebugEnabled() {
		t.Error("nop logger should not enable debug")
	}
}

func TestWithContext_RunID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)

	ctx := ContextWithRunID(context.Background(), "run-42")
	if got := RunIDFromContext(ctx); got != "run-42" {
		t.Fatalf("RunIDFromContext() = %q, want run-42", got)
	}

	l.WithContext(ctx).Info("started")
	if !strings.Contains(buf.String(), `"run_id":"run-42"`) {
		t.Errorf("expected run_id field, got %q", buf.String())
	}
}

func TestRunIDFromContext_Missing(t *testing.T) {
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty run id, got %q", got)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithError(errors.New("boom")).Error("failed")
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error field, got %q", buf.String())
	}
}

func TestInit(t *testing.T) {
	cfg := Config{
		Level:       "WARNING",
		Format:      "json",
		ServiceName: "init-test",
	}
	Init(&cfg)
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "init-test" {
		t.Errorf("expected service init-test, got %q", gl.service)
	}
	if cfg.Level != "warn" {
		t.Errorf("expected Init to normalize level, got %q", cfg.Level)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "debug", Format: "json"}, "test", &buf))
	defer SetGlobalLogger(nil)

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("buffer").Info("component msg")
	WithContext(context.Background()).Info("context msg")

	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", `"component":"buffer"`, "context msg"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"upper-case alias", Config{Level: "CRITICAL", Format: "json"}, false},
		{"warning alias", Config{Level: "warning", Format: "json", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"DEBUG":     "debug",
		" info ":    "info",
		"WARNING":   "warn",
		"warn":      "warn",
		"Critical":  "fatal",
		"ERROR":     "error",
		"":          "",
		"something": "something",
	}
	for in, want := range tests {
		if got := NormalizeLevel(in); got != want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)
	defer Unregister("my-component")

	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	if got := Get("unregistered-component"); got == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestRegisterDefaults(t *testing.T) {
	Init(&Config{Level: "info", Format: "json"})
	names := []string{"buffer", "producer", "consumer"}
	RegisterDefaults(names...)
	defer Unregister(names...)

	for _, name := range names {
		if got := Get(name); got == nil {
			t.Errorf("expected non-nil logger for %q", name)
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want map[string]interface{}
	}{
		{"pairs", []interface{}{"a", 1, "b", "two"}, map[string]interface{}{"a": 1, "b": "two"}},
		{"odd trailing key dropped", []interface{}{"a", 1, "b"}, map[string]interface{}{"a": 1}},
		{"non-string key skipped", []interface{}{3, "x", "k", true}, map[string]interface{}{"k": true}},
		{"empty", nil, map[string]interface{}{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fields(tc.in...)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	f := ErrorFields("build-buffer", errors.New("bad capacity"))
	if f[FieldOperation] != "build-buffer" {
		t.Errorf("expected operation, got %v", f[FieldOperation])
	}
	if f[FieldError] != "bad capacity" {
		t.Errorf("expected error, got %v", f[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	f := DurationFields("run", 1500*time.Millisecond)
	if f[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", f[FieldDuration])
	}
}

func TestMergeWithDuration(t *testing.T) {
	f := MergeWithDuration(nil, 20*time.Millisecond)
	if f[FieldDuration] != int64(20) {
		t.Errorf("expected 20ms, got %v", f[FieldDuration])
	}

	f = MergeWithDuration(Fields("items", 3), time.Second)
	if f["items"] != 3 || f[FieldDuration] != int64(1000) {
		t.Errorf("expected merged fields, got %v", f)
	}
}
