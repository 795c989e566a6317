// Package assemble turns a discovered, ordered file list into the single
// annotated output document. It owns the per-file mode dispatch: verbatim
// passthrough in full mode, the public-surface transform in api mode, and
// the fallback to verbatim content whenever parsing or extraction fails.
package assemble

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/PhilippHGerber/llmifier/internal/config"
	"github.com/PhilippHGerber/llmifier/internal/discovery"
	"github.com/PhilippHGerber/llmifier/internal/lang"
	"github.com/PhilippHGerber/llmifier/internal/lang/dart"
	"github.com/PhilippHGerber/llmifier/internal/lang/python"
	"github.com/PhilippHGerber/llmifier/internal/order"
	"github.com/PhilippHGerber/llmifier/internal/surface"
)

// Progress receives assembly progress callbacks. Implementations must be
// safe for concurrent OnFileDone calls.
type Progress interface {
	OnDiscoveryComplete(totalFiles int)
	OnFileDone(relPath string)
	OnAssemblyComplete(outputPath string, files int, elapsed time.Duration)
}

// NopProgress discards all progress callbacks.
type NopProgress struct{}

func (NopProgress) OnDiscoveryComplete(int)                       {}
func (NopProgress) OnFileDone(string)                             {}
func (NopProgress) OnAssemblyComplete(string, int, time.Duration) {}

// Options configures one assembler.
type Options struct {
	RootDir     string
	Mode        config.Mode
	Output      string
	Include     []string
	Exclude     []string
	Concurrency int // 0 means GOMAXPROCS
	Logger      *slog.Logger
	Progress    Progress
}

// Result summarizes one assembly run.
type Result struct {
	OutputPath string
	Files      int
	Reduced    int
	Elapsed    time.Duration
}

// Assembler runs assembly passes over a project. Safe to reuse across runs:
// it holds no per-run state, so watch mode re-invokes the same instance.
type Assembler struct {
	opts      Options
	providers map[string]lang.Provider // keyed by file extension
}

// New creates an assembler. The output file is always excluded from
// discovery so a previous run's document never feeds the next one.
func New(opts Options) (*Assembler, error) {
	if opts.RootDir == "" {
		return nil, fmt.Errorf("assembler requires a root directory")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Progress == nil {
		opts.Progress = NopProgress{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	return &Assembler{
		opts: opts,
		providers: map[string]lang.Provider{
			".dart": dart.NewProvider(),
			".py":   python.NewProvider(),
		},
	}, nil
}

// Run performs one full assembly pass and writes the output document.
func (a *Assembler) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	excludes := append([]string{}, a.opts.Exclude...)
	excludes = append(excludes, filepath.ToSlash(a.opts.Output))

	disc, err := discovery.New(a.opts.RootDir, a.opts.Include, excludes)
	if err != nil {
		return nil, err
	}
	files, err := disc.Files()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	ordered := order.Sort(files)
	a.opts.Progress.OnDiscoveryComplete(len(ordered))

	sections := a.processAll(ctx, ordered)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := renderDocument(filepath.Base(a.opts.RootDir), a.opts.Mode, sections)
	outputPath := a.opts.Output
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(a.opts.RootDir, outputPath)
	}
	if err := writeAtomic(outputPath, []byte(doc)); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	result := &Result{
		OutputPath: outputPath,
		Elapsed:    time.Since(started),
	}
	for _, s := range sections {
		if s.skip {
			continue
		}
		result.Files++
		if s.reduced {
			result.Reduced++
		}
	}
	a.opts.Progress.OnAssemblyComplete(outputPath, result.Files, result.Elapsed)
	return result, nil
}

// section is one file's contribution to the document.
type section struct {
	relPath string
	content string
	fence   string // fence info tag, "" for plain text
	reduced bool
	skip    bool
}

// processAll transforms every file on a bounded worker pool. Results are
// collected by index so the document order stays deterministic regardless
// of scheduling.
func (a *Assembler) processAll(ctx context.Context, files []string) []section {
	sections := make([]section, len(files))
	sem := make(chan struct{}, a.opts.Concurrency)
	var wg sync.WaitGroup

	for i, rel := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, rel string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sections[i] = a.processFile(rel)
			a.opts.Progress.OnFileDone(rel)
		}(i, rel)
	}
	wg.Wait()
	return sections
}

// processFile reads one file and renders its content for the selected mode.
func (a *Assembler) processFile(rel string) section {
	s := section{relPath: rel, fence: fenceTag(rel)}

	data, err := os.ReadFile(filepath.Join(a.opts.RootDir, filepath.FromSlash(rel)))
	if err != nil {
		a.opts.Logger.Warn("skipping unreadable file", "path", rel, "error", err)
		s.skip = true
		return s
	}
	if bytes.IndexByte(data, 0) >= 0 {
		a.opts.Logger.Debug("skipping binary file", "path", rel)
		s.skip = true
		return s
	}

	s.content = string(data)
	if a.opts.Mode != config.ModeAPI {
		return s
	}
	provider, ok := a.providers[filepath.Ext(rel)]
	if !ok {
		return s
	}
	if reduced, ok := a.reduce(provider, rel, data); ok {
		s.content = reduced
		s.reduced = true
	}
	return s
}

// reduce runs the public-surface transform for one file. Any failure
// (provider error, parse diagnostics, a panic inside the traversal) is
// non-fatal: the file falls back to verbatim content and the run continues.
func (a *Assembler) reduce(provider lang.Provider, rel string, data []byte) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.opts.Logger.Warn("surface extraction panicked, using verbatim content",
				"path", rel, "panic", r)
			out, ok = "", false
		}
	}()

	f, err := provider.Parse(rel, data)
	if err != nil {
		a.opts.Logger.Warn("parse failed, using verbatim content", "path", rel, "error", err)
		return "", false
	}
	if f.Failed() {
		a.opts.Logger.Warn("parse errors, using verbatim content",
			"path", rel, "errors", f.ErrorSummary())
		return "", false
	}
	return surface.Extract(f), true
}

// writeAtomic writes the document via a temp file in the target directory
// and a rename, so a crashed run never leaves a truncated document behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".llmifier-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	// CreateTemp opens with mode 0600; the assembled document is a regular
	// artifact and should carry normal file permissions.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
