// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// clearScreen moves the cursor home after clearing the terminal.
const clearScreen = "\033[2J\033[H"

// ErrAlreadyRunning is returned by a second call to Watcher.Run.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

// defaultIgnores are always excluded: VCS metadata, dependency and build
// output trees, editor swap files and OS metadata.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/target/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Watcher monitors a directory tree and fires a debounced callback when
// matching files change.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	stdout   io.Writer
	debounce time.Duration
	baseDir  string
	dirs     int
	started  atomic.Bool
}

// New validates cfg, resolves BaseDir and registers every non-ignored
// directory below it.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	baseDir := string(cfg.BaseDir)
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}
	if info, statErr := os.Stat(absBase); statErr != nil {
		return nil, fmt.Errorf("watch: %w", statErr)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", absBase)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore)+len(cfg.IgnoreDirs))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)
	for _, name := range cfg.IgnoreDirs {
		ignores = append(ignores, "**/"+name+"/**")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		stdout:   stdout,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			slog.Debug("watch: close after init failure", "error", closeErr)
		}
		return nil, err
	}
	slog.Debug("watching", "dir", absBase, "directories", w.dirs, "debounce", debounce)

	return w, nil
}

// BaseDir returns the absolute watched root.
func (w *Watcher) BaseDir() string { return w.baseDir }

// Run blocks until ctx is cancelled. It returns nil on cancellation and an
// error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	invoke := func(changed []string) {
		if w.cfg.ClearScreen {
			fmt.Fprint(w.stdout, clearScreen)
		}
		if w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			slog.Warn("watch: callback failed", "error", err)
		}
	}

	// fire runs at most one callback at a time. A fire that finds the
	// callback busy re-arms the timer so the pending paths are not dropped.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			slog.Debug("watch: previous run still in progress, deferring")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		slog.Debug("watch: change detected", "files", changed)
		invoke(changed)
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			slog.Debug("watch: close fsnotify", "error", closeErr)
		}
	}()

	if w.cfg.RunOnStart {
		running.Store(true)
		invoke(nil)
		running.Store(false)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if w.isIgnored(rel) {
				continue
			}

			// New directories are registered even when they do not match,
			// so files created inside them later are seen.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			if !w.matchesPatterns(rel) {
				continue
			}

			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			slog.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// addDirectories registers every non-ignored directory under baseDir.
// Patterns are applied when events arrive, not here.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			slog.Debug("watch: skipping inaccessible path", "path", path, "error", walkDirErr)
			return nil //nolint:nilerr // inaccessible paths are skipped
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if rel != "." && w.isIgnoredDir(rel) {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		w.dirs++
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.isIgnoredDir(rel) {
		return
	}

	if addErr := w.fsw.Add(path); addErr != nil {
		slog.Warn("watch: add new directory", "path", path, "error", addErr)
	}
}

func (w *Watcher) isIgnoredDir(rel string) bool {
	return w.isIgnored(rel) || w.isIgnored(rel+"/")
}

// isIgnored reports whether rel (relative to baseDir) matches an ignore pattern.
func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// matchesPatterns reports whether rel matches a watch pattern. No patterns
// means everything matches.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	return matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}
