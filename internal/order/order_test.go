package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Sort:
// - Readme first, then manifests, then project configuration
// - top-level lib/ entry files before the rest of lib/
// - bin/, src/ and other source after lib/
// - test/ near the end, unclassified files last
// - Alphabetical order within a group
// - Input slice left untouched

func TestSort_DocumentOrder(t *testing.T) {
	t.Parallel()

	got := Sort([]string{
		"test/app_test.dart",
		"lib/src/engine.dart",
		"assets/logo.svg",
		"analysis_options.yaml",
		"lib/app.dart",
		"bin/main.dart",
		"pubspec.yaml",
		"README.md",
	})

	assert.Equal(t, []string{
		"README.md",
		"pubspec.yaml",
		"analysis_options.yaml",
		"lib/app.dart",
		"lib/src/engine.dart",
		"bin/main.dart",
		"test/app_test.dart",
		"assets/logo.svg",
	}, got)
}

func TestSort_AlphabeticalWithinGroup(t *testing.T) {
	t.Parallel()

	got := Sort([]string{
		"lib/src/b.dart",
		"lib/src/a.dart",
		"lib/src/c.dart",
	})

	assert.Equal(t, []string{
		"lib/src/a.dart",
		"lib/src/b.dart",
		"lib/src/c.dart",
	}, got)
}

func TestSort_InputNotModified(t *testing.T) {
	t.Parallel()

	in := []string{"test/z_test.dart", "README.md"}
	Sort(in)
	assert.Equal(t, []string{"test/z_test.dart", "README.md"}, in)
}

func TestGroup_Classification(t *testing.T) {
	t.Parallel()

	assert.Equal(t, groupReadme, group("README.md"))
	assert.Equal(t, groupReadme, group("readme.txt"))
	assert.Equal(t, groupManifest, group("pubspec.yaml"))
	assert.Equal(t, groupManifest, group("go.mod"))
	assert.Equal(t, groupProjectConfig, group("analysis_options.yaml"))
	assert.Equal(t, groupLibEntry, group("lib/app.dart"))
	assert.Equal(t, groupLib, group("lib/src/engine.dart"))
	assert.Equal(t, groupBin, group("bin/main.dart"))
	assert.Equal(t, groupSrc, group("src/index.ts"))
	assert.Equal(t, groupTest, group("test/app_test.dart"))
	assert.Equal(t, groupTest, group("tests/test_app.py"))
	assert.Equal(t, groupOtherSource, group("tool/gen.dart"))
	assert.Equal(t, groupRest, group("assets/logo.svg"))
}
