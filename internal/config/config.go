// Package config holds the llmifier run configuration and its layered
// loading: defaults, config file, environment, CLI flags.
package config

// Mode selects how file contents enter the assembled document.
type Mode string

const (
	// ModeFull passes file contents through verbatim.
	ModeFull Mode = "full"
	// ModeAPI reduces supported source files to their public surface.
	ModeAPI Mode = "api"
)

// Config represents the complete llmifier configuration. It can be loaded
// from llmifier.yml with environment variable and CLI flag overrides.
type Config struct {
	Mode        Mode        `yaml:"mode" mapstructure:"mode"`
	Output      string      `yaml:"output" mapstructure:"output"`
	Paths       PathsConfig `yaml:"paths" mapstructure:"paths"`
	Concurrency int         `yaml:"concurrency" mapstructure:"concurrency"` // 0 means GOMAXPROCS
}

// PathsConfig defines which files enter the document and which are skipped.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns to include
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // glob patterns to exclude
}

// Default returns a configuration with sensible defaults for a Dart or
// Flutter project.
func Default() *Config {
	return &Config{
		Mode:   ModeAPI,
		Output: "project.llm.md",
		Paths: PathsConfig{
			Include: []string{"**"},
			Exclude: []string{
				".git/**",
				".dart_tool/**",
				".idea/**",
				".vscode/**",
				"build/**",
				"node_modules/**",
				"**/*.g.dart",
				"**/*.freezed.dart",
				"**/*.gr.dart",
				"pubspec.lock",
				"**/*.png",
				"**/*.jpg",
				"**/*.ico",
				"**/*.ttf",
				"**/*.otf",
			},
		},
		Concurrency: 0,
	}
}
