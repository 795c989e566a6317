package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the loader:
// - Defaults apply when no config file exists
// - llmifier.yml in the root overrides defaults
// - Explicit config files are honored and must exist
// - Environment variables override the config file
// - Invalid configuration fails loading

func TestLoader_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ModeAPI, cfg.Mode)
	assert.Equal(t, "project.llm.md", cfg.Output)
	assert.Contains(t, cfg.Paths.Include, "**")
	assert.Contains(t, cfg.Paths.Exclude, ".git/**")
	assert.Equal(t, 0, cfg.Concurrency)
}

func TestLoader_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `mode: full
output: context.md
paths:
  include:
    - "lib/**"
  exclude:
    - "lib/generated/**"
concurrency: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "llmifier.yml"), []byte(content), 0o644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, ModeFull, cfg.Mode)
	assert.Equal(t, "context.md", cfg.Output)
	assert.Equal(t, []string{"lib/**"}, cfg.Paths.Include)
	assert.Equal(t, []string{"lib/generated/**"}, cfg.Paths.Exclude)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestLoader_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: full\n"), 0o644))

	cfg, err := NewLoader(dir, path).Load()
	require.NoError(t, err)
	assert.Equal(t, ModeFull, cfg.Mode)

	_, err = NewLoader(dir, filepath.Join(dir, "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LLMIFIER_MODE", "full")
	t.Setenv("LLMIFIER_OUTPUT", "from-env.md")

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ModeFull, cfg.Mode)
	assert.Equal(t, "from-env.md", cfg.Output)
}

func TestLoader_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "llmifier.yml"), []byte("mode: sideways\n"), 0o644))

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMode)
}
