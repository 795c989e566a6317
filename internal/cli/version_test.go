package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	t.Parallel()

	s := versionString()
	assert.Contains(t, s, "llmifier")
	assert.Contains(t, s, version)
	assert.Contains(t, s, gitCommit)
}
