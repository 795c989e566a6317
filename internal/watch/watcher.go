// Package watch reassembles the document whenever project files change.
// Events are debounced so editor save bursts trigger a single pass.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// skipDirNames are directories never worth watching. They mirror the default
// discovery excludes for trees that churn constantly.
var skipDirNames = map[string]bool{
	".git":         true,
	".dart_tool":   true,
	".idea":        true,
	".vscode":      true,
	"build":        true,
	"node_modules": true,
}

// Watcher watches a project tree recursively and invokes a callback after a
// quiet period. Each firing carries a fresh run ID so log lines from
// successive assembly passes stay distinguishable.
type Watcher struct {
	fsw      *fsnotify.Watcher
	rootDir  string
	output   string // root-relative output path, events on it are ignored
	debounce time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	accumulated map[string]bool
	timer       *time.Timer
}

// New creates a watcher rooted at rootDir. output names the assembled
// document so writes to it never retrigger a pass.
func New(rootDir, output string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:         fsw,
		rootDir:     rootDir,
		output:      filepath.ToSlash(output),
		debounce:    500 * time.Millisecond,
		logger:      logger,
		accumulated: make(map[string]bool),
	}
	if err := w.addRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until the context is cancelled, invoking onChange with a run ID
// and the accumulated changed paths after each debounce window.
func (w *Watcher) Run(ctx context.Context, onChange func(runID string, changed []string)) error {
	defer w.fsw.Close()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, fire)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			changed := w.takeAccumulated()
			if len(changed) == 0 {
				continue
			}
			runID := uuid.NewString()
			w.logger.Info("change detected", "run_id", runID, "files", len(changed))
			onChange(runID, changed)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, fire chan struct{}) {
	rel, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	base := filepath.Base(event.Name)
	if rel == w.output || strings.HasPrefix(base, ".llmifier-") {
		return
	}

	// New directories join the watch set so files created inside them are
	// seen without a restart.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDirNames[base] {
				if err := w.addRecursively(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", rel, "error", err)
				}
			}
			return
		}
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	w.accumulated[rel] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
	w.mu.Unlock()
}

func (w *Watcher) takeAccumulated() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := make([]string, 0, len(w.accumulated))
	for path := range w.accumulated {
		changed = append(changed, path)
	}
	w.accumulated = make(map[string]bool)
	return changed
}

func (w *Watcher) addRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if skipDirNames[info.Name()] && path != dir {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
