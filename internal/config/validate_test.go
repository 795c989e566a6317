package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Validate:
// - Accept the default configuration
// - Reject unknown modes, empty output, empty includes
// - Reject negative concurrency
// - Reject glob patterns that do not compile
// - Report every problem at once via joined errors

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(Default()))
}

func TestValidate_IndividualErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Mode = "sideways"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidMode)

	cfg = Default()
	cfg.Output = ""
	assert.ErrorIs(t, Validate(cfg), ErrEmptyOutput)

	cfg = Default()
	cfg.Paths.Include = nil
	assert.ErrorIs(t, Validate(cfg), ErrNoIncludes)

	cfg = Default()
	cfg.Concurrency = -1
	assert.ErrorIs(t, Validate(cfg), ErrInvalidConcurrency)

	cfg = Default()
	cfg.Paths.Exclude = append(cfg.Paths.Exclude, "[unclosed")
	assert.ErrorIs(t, Validate(cfg), ErrInvalidPattern)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{Mode: "bogus", Output: "", Concurrency: -2}
	err := Validate(cfg)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.ErrorIs(t, err, ErrEmptyOutput)
	assert.ErrorIs(t, err, ErrNoIncludes)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
}
