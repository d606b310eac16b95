package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/kbukum/prodcon/errors"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file. Variables already present in the process
// environment are not overwritten.
func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(serviceName)
	}

	return resolved
}

// findConfigFile searches for <service>.yml and config.yml in standard locations.
func (cr *Resolver) findConfigFile(serviceName string) string {
	searchPaths := []string{
		fmt.Sprintf("./%s.yml", serviceName),
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		fmt.Sprintf("../cmd/%s/config.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}

	for _, path := range searchPaths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func (cr *Resolver) findEnvFile(serviceName string) string {
	envFiles := []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
	bases := []string{"", fmt.Sprintf("./cmd/%s", serviceName), "./config"}

	for _, envFile := range envFiles {
		for _, base := range bases {
			fullPath := envFile
			if base != "" {
				fullPath = base + "/" + envFile
			}
			if cr.FileSystem.Exists(fullPath) {
				return fullPath
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	Defaults   map[string]interface{}
	Flags      map[string]*pflag.Flag
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. A missing explicit
// file is an error, unlike a file that was merely not found by search.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path. Like an explicit config
// file, it must exist.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefaults registers default values by dotted key. Keys must be known to
// the loader for environment variables to apply to them.
func WithDefaults(defaults map[string]interface{}) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]interface{}, len(defaults))
		}
		for k, v := range defaults {
			lc.Defaults[k] = v
		}
	}
}

// WithFlag binds a command-line flag to a dotted key. A flag only overrides
// lower layers when it was set explicitly.
func WithFlag(key string, flag *pflag.Flag) LoaderOption {
	return func(lc *LoaderConfig) {
		if flag == nil {
			return
		}
		if lc.Flags == nil {
			lc.Flags = make(map[string]*pflag.Flag)
		}
		lc.Flags[key] = flag
	}
}

// LoadConfig loads configuration for a service into the provided cfg struct.
// Layers, highest precedence first: explicitly set flags, environment
// variables (including those from a .env file), the config file, defaults.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	if lc.ConfigFile != "" && !lc.FileSystem.Exists(lc.ConfigFile) {
		return apperrors.InvalidConfig("config", fmt.Sprintf("file %s does not exist", lc.ConfigFile))
	}
	if lc.EnvFile != "" && !lc.FileSystem.Exists(lc.EnvFile) {
		return apperrors.InvalidConfig("env", fmt.Sprintf("file %s does not exist", lc.EnvFile))
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	return load(serviceName, cfg, files, lc)
}

func load(serviceName string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) error {
	v := viper.New()

	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	// 1. YAML config (base configuration)
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return apperrors.InvalidConfig("config", fmt.Sprintf("read %s", files.ConfigFile)).WithCause(err)
		}
	}

	// 2. .env file, then process environment
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return apperrors.InvalidConfig("env", fmt.Sprintf("load %s", files.EnvFile)).WithCause(err)
		}
	}
	v.SetEnvPrefix(envPrefix(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// 3. Flags
	for key, flag := range lc.Flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("config: bind flag %s: %w", flag.Name, err)
		}
	}

	// 4. Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return apperrors.InvalidConfig("config", fmt.Sprintf("decode config for service %s", serviceName)).WithCause(err)
	}

	return nil
}

// envPrefix is the upper-cased service name, so "prodcon" reads
// PRODCON_PIPELINE_CAPACITY for the key pipeline.capacity.
func envPrefix(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
}
