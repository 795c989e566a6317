package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublic(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPublic("Counter"))
	assert.True(t, IsPublic("value"))
	assert.True(t, IsPublic("$special"))

	// Anonymous declarations (unnamed extensions, default constructors) count
	// as public.
	assert.True(t, IsPublic(""))

	assert.False(t, IsPublic("_count"))
	assert.False(t, IsPublic("__proxy"))
	assert.False(t, IsPublic("_"))
}
