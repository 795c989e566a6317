package assemble

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/PhilippHGerber/llmifier/internal/config"
)

// fenceTags maps file extensions to Markdown fence info strings.
var fenceTags = map[string]string{
	".dart":  "dart",
	".py":    "python",
	".go":    "go",
	".js":    "javascript",
	".ts":    "typescript",
	".rs":    "rust",
	".java":  "java",
	".md":    "markdown",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".json":  "json",
	".html":  "html",
	".css":   "css",
	".sh":    "bash",
	".sql":   "sql",
	".proto": "proto",
}

func fenceTag(relPath string) string {
	return fenceTags[path.Ext(relPath)]
}

// renderDocument produces the final Markdown document: a header, the project
// tree, then one section per file in the given order.
func renderDocument(projectName string, mode config.Mode, sections []section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project: %s\n\n", projectName)
	fmt.Fprintf(&b, "> Generated by llmifier on %s — mode: %s\n\n",
		time.Now().Format(time.RFC3339), mode)

	var paths []string
	for _, s := range sections {
		if !s.skip {
			paths = append(paths, s.relPath)
		}
	}
	b.WriteString("## Project Structure\n\n")
	b.WriteString("```\n")
	b.WriteString(renderTree(paths))
	b.WriteString("```\n")

	for _, s := range sections {
		if s.skip {
			continue
		}
		fmt.Fprintf(&b, "\n## FILE: %s\n", s.relPath)
		if s.reduced {
			b.WriteString("_(public API surface)_\n")
		}
		b.WriteString("\n")

		fence := fenceFor(s.content)
		b.WriteString(fence)
		b.WriteString(s.fence)
		b.WriteString("\n")
		b.WriteString(s.content)
		if s.content != "" && !strings.HasSuffix(s.content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(fence)
		b.WriteString("\n")
	}

	return b.String()
}

// fenceFor picks a backtick fence one longer than the longest backtick run
// in the content, so embedded Markdown code blocks cannot break the section.
func fenceFor(content string) string {
	longest := 0
	run := 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	n := 3
	if longest >= 3 {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}

// renderTree draws a nested directory listing for the given root-relative
// paths. Directories come before files at each level.
func renderTree(paths []string) string {
	type node struct {
		children map[string]*node
		isFile   bool
	}
	root := &node{children: map[string]*node{}}

	for _, p := range paths {
		cur := root
		parts := strings.Split(p, "/")
		for i, part := range parts {
			next, ok := cur.children[part]
			if !ok {
				next = &node{children: map[string]*node{}}
				cur.children[part] = next
			}
			if i == len(parts)-1 {
				next.isFile = true
			}
			cur = next
		}
	}

	var b strings.Builder
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			di, dj := !n.children[names[i]].isFile, !n.children[names[j]].isFile
			if di != dj {
				return di
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			child := n.children[name]
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString(name)
			if !child.isFile {
				b.WriteString("/")
			}
			b.WriteString("\n")
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return b.String()
}
