// Package order decides the sequence in which files appear in the assembled
// document. Readers (human or model) get orientation material first: the
// readme, then manifests and project configuration, then library source from
// entry points inward, with tests and everything else at the end.
package order

import (
	"path"
	"sort"
	"strings"
)

// Group ranks. Lower comes first; ties break alphabetically.
const (
	groupReadme = iota
	groupManifest
	groupProjectConfig
	groupLibEntry
	groupLib
	groupBin
	groupSrc
	groupOtherSource
	groupTest
	groupRest
)

var manifestNames = map[string]bool{
	"pubspec.yaml": true,
	"go.mod":       true,
	"package.json": true,
	"Cargo.toml":   true,
}

var sourceExtensions = map[string]bool{
	".dart": true,
	".py":   true,
	".go":   true,
	".js":   true,
	".ts":   true,
	".rs":   true,
}

// Sort returns the paths in document order. Input paths are root-relative
// and '/'-normalized; the input slice is not modified.
func Sort(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.SliceStable(sorted, func(i, j int) bool {
		gi, gj := group(sorted[i]), group(sorted[j])
		if gi != gj {
			return gi < gj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

func group(p string) int {
	base := path.Base(p)
	dir, _, _ := strings.Cut(p, "/")

	switch {
	case !strings.Contains(p, "/") && strings.HasPrefix(strings.ToLower(base), "readme"):
		return groupReadme
	case !strings.Contains(p, "/") && manifestNames[base]:
		return groupManifest
	case !strings.Contains(p, "/") && isConfigFile(base):
		return groupProjectConfig
	case dir == "lib":
		// Source directly under lib/ is the package entry point layer. It is
		// the conventional home of barrel files and reads best before the
		// implementation under lib/src/.
		if path.Dir(p) == "lib" && path.Ext(p) == ".dart" {
			return groupLibEntry
		}
		return groupLib
	case dir == "bin":
		return groupBin
	case dir == "src":
		return groupSrc
	case dir == "test" || dir == "tests":
		return groupTest
	case sourceExtensions[path.Ext(p)]:
		return groupOtherSource
	default:
		return groupRest
	}
}

func isConfigFile(base string) bool {
	switch path.Ext(base) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	}
	return false
}
