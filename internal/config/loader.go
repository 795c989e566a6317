package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins).
	// CLI flag overrides are applied by the caller on top of the result.
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a configuration loader for the given root directory.
// configFile, when non-empty, points at an explicit config file and replaces
// the default search for llmifier.yml in the root.
func NewLoader(rootDir, configFile string) Loader {
	return &loader{rootDir: rootDir, configFile: configFile}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (LLMIFIER_*)
// 2. Config file (llmifier.yml or llmifier.yaml in the project root)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("llmifier")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	v.SetEnvPrefix("LLMIFIER")
	v.AutomaticEnv()
	// Nested keys map onto flat env names (LLMIFIER_PATHS_INCLUDE).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("mode")
	v.BindEnv("output")
	v.BindEnv("concurrency")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is acceptable; defaults plus env apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if l.configFile == "" {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("mode", string(defaults.Mode))
	v.SetDefault("output", defaults.Output)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.exclude", defaults.Paths.Exclude)
}

// LoadFromDir loads configuration from a specific project directory.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir, "").Load()
}
