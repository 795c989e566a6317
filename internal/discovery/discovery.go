// Package discovery walks a project root and selects the files that take
// part in an assembly run, using glob-based include and exclude patterns.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery selects project files for assembly. Matching happens against
// '/'-normalized paths relative to the root.
type Discovery struct {
	rootDir  string
	includes []compiledPattern
	excludes []compiledPattern
}

// New compiles the include and exclude patterns for the given root.
func New(rootDir string, includes, excludes []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range includes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		d.includes = append(d.includes, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		d.excludes = append(d.excludes, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Files walks the tree and returns the root-relative, '/'-normalized paths
// of all selected files.
func (d *Discovery) Files() ([]string, error) {
	var files []string

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if info.IsDir() {
			// Prune excluded directory subtrees instead of visiting every
			// file inside them.
			if d.excluded(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.excluded(relPath) {
			return nil
		}
		if matchesAny(relPath, d.includes) {
			files = append(files, relPath)
		}
		return nil
	})

	return files, err
}

// excluded checks a path against the exclude patterns. A directory also
// counts as excluded when the pattern targets its contents ("build/**").
func (d *Discovery) excluded(relPath string) bool {
	if matchesAny(relPath, d.excludes) {
		return true
	}
	return matchesAny(relPath+"/**", d.excludes)
}

// matchesAny checks a path against the given patterns. Root-level paths
// additionally match patterns written with a "**/" prefix, so "**/*.dart"
// covers both "main.dart" and "lib/main.dart" the way users expect.
func matchesAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}
	return false
}
