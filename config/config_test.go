package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/kbukum/prodcon/errors"
	"github.com/kbukum/prodcon/logger"
)

type pipelineSection struct {
	Buffer        string        `mapstructure:"buffer"`
	Capacity      int           `mapstructure:"capacity"`
	ProducerDelay time.Duration `mapstructure:"producer_delay"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pipeline      pipelineSection `mapstructure:"pipeline"`
}

var testDefaults = map[string]interface{}{
	"name":                    "prodcon-test",
	"logging.level":           "info",
	"pipeline.buffer":         "queue",
	"pipeline.capacity":       2,
	"pipeline.producer_delay": "0s",
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name 'svc', got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("debug level turns debug on", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Logging: loggerConfig("DEBUG")}
		cfg.ApplyDefaults()
		if !cfg.Debug {
			t.Error("expected debug=true for debug logging")
		}
	})

	t.Run("info level keeps debug off", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		field   string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development", Logging: loggerConfig("info")}, false, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production", Logging: loggerConfig("warning")}, false, ""},
		{"missing name", ServiceConfig{Environment: "production", Logging: loggerConfig("info")}, true, "name"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid", Logging: loggerConfig("info")}, true, "environment"},
		{"invalid log level", ServiceConfig{Name: "svc", Environment: "staging", Logging: loggerConfig("loud")}, true, "logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected *AppError, got %v", err)
			}
			if appErr.Code != apperrors.ErrCodeInvalidConfig {
				t.Errorf("expected INVALID_CONFIG, got %s", appErr.Code)
			}
			if appErr.Details["field"] != tc.field {
				t.Errorf("expected field %q, got %v", tc.field, appErr.Details["field"])
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "prodcon.yml")

	yamlContent := `
name: from-file
environment: staging
pipeline:
  buffer: condition
  capacity: 7
  producer_delay: 15ms
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	err := LoadConfig("prodcon-test", &cfg, WithConfigFile(configPath), WithDefaults(testDefaults))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "from-file" {
		t.Errorf("expected name 'from-file', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Pipeline.Buffer != "condition" {
		t.Errorf("expected buffer 'condition', got %q", cfg.Pipeline.Buffer)
	}
	if cfg.Pipeline.Capacity != 7 {
		t.Errorf("expected capacity 7, got %d", cfg.Pipeline.Capacity)
	}
	if cfg.Pipeline.ProducerDelay != 15*time.Millisecond {
		t.Errorf("expected producer delay 15ms, got %v", cfg.Pipeline.ProducerDelay)
	}
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("prodcon-test", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{}}),
		WithDefaults(testDefaults),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pipeline.Buffer != "queue" || cfg.Pipeline.Capacity != 2 {
		t.Errorf("expected defaults, got %+v", cfg.Pipeline)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging.level default, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	tests := []struct {
		name  string
		opt   LoaderOption
		field string
	}{
		{"config file", WithConfigFile("/nonexistent/path.yml"), "config"},
		{"env file", WithEnvFile("/nonexistent/.env"), "env"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg testConfig
			err := LoadConfig("prodcon-test", &cfg, tc.opt)
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeInvalidConfig {
				t.Fatalf("expected INVALID_CONFIG for a missing explicit file, got %v", err)
			}
			if appErr.Details["field"] != tc.field {
				t.Errorf("field = %v, want %s", appErr.Details["field"], tc.field)
			}
		})
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "prodcon.yml")
	if err := os.WriteFile(configPath, []byte("pipeline:\n  capacity: 3\n  buffer: condition\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name         string
		env          string
		flagArgs     []string
		wantCapacity int
	}{
		{"file over default", "", nil, 3},
		{"env over file", "9", nil, 9},
		{"flag over env", "9", []string{"--capacity=11"}, 11},
		{"unset flag does not override", "9", []string{}, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv("PRODCON_TEST_PIPELINE_CAPACITY", tc.env)
			}

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.Int("capacity", 2, "buffer capacity")
			if err := fs.Parse(tc.flagArgs); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			var cfg testConfig
			err := LoadConfig("prodcon-test", &cfg,
				WithConfigFile(configPath),
				WithDefaults(testDefaults),
				WithFlag("pipeline.capacity", fs.Lookup("capacity")),
			)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.Pipeline.Capacity != tc.wantCapacity {
				t.Errorf("capacity = %d, want %d", cfg.Pipeline.Capacity, tc.wantCapacity)
			}
			if cfg.Pipeline.Buffer != "condition" {
				t.Errorf("buffer = %q, want condition from file", cfg.Pipeline.Buffer)
			}
		})
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PRODCON_ENVFILE_PIPELINE_BUFFER=condition\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PRODCON_ENVFILE_PIPELINE_BUFFER") })

	var cfg testConfig
	err := LoadConfig("prodcon-envfile", &cfg, WithEnvFile(envPath), WithDefaults(testDefaults))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pipeline.Buffer != "condition" {
		t.Errorf("expected buffer from .env, got %q", cfg.Pipeline.Buffer)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "prodcon.yml")
	if err := os.WriteFile(configPath, []byte("pipeline: [unclosed\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	err := LoadConfig("prodcon-test", &cfg, WithConfigFile(configPath))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "prodcon.yml") {
		t.Errorf("expected error to name the file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]bool
		wantConfig string
		wantEnv    string
	}{
		{
			name:       "service file wins",
			files:      map[string]bool{"./my-svc.yml": true, "./config.yml": true},
			wantConfig: "./my-svc.yml",
		},
		{
			name:       "cmd dir config",
			files:      map[string]bool{"./cmd/my-svc/config.yml": true, ".env": true},
			wantConfig: "./cmd/my-svc/config.yml",
			wantEnv:    ".env",
		},
		{
			name:    "service env file wins",
			files:   map[string]bool{".env.my-svc": true, ".env": true},
			wantEnv: ".env.my-svc",
		},
		{
			name:  "nothing found",
			files: map[string]bool{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &Resolver{FileSystem: &mockFS{files: tc.files}}
			files := resolver.ResolveFiles("my-svc", LoaderConfig{})
			if files.ConfigFile != tc.wantConfig {
				t.Errorf("config file = %q, want %q", files.ConfigFile, tc.wantConfig)
			}
			if files.EnvFile != tc.wantEnv {
				t.Errorf("env file = %q, want %q", files.EnvFile, tc.wantEnv)
			}
		})
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("prodcon-test"); got != "PRODCON_TEST" {
		t.Errorf("envPrefix() = %q, want PRODCON_TEST", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithDefaults(map[string]interface{}{"a": 1})(&lc)
	WithDefaults(map[string]interface{}{"b": 2})(&lc)
	WithFlag("x", nil)(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if len(lc.Defaults) != 2 {
		t.Errorf("expected merged defaults, got %v", lc.Defaults)
	}
	if len(lc.Flags) != 0 {
		t.Errorf("expected nil flag to be ignored, got %v", lc.Flags)
	}
}

func loggerConfig(level string) logger.Config {
	return logger.Config{Level: level, Format: "json"}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
