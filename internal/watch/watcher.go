// Package watch reruns generation when Go sources change.
//
// It monitors a directory tree and invokes a callback once the tree has been
// quiet for a debounce period. Events within the window are coalesced, so an
// editor's write-rename dance or a branch switch triggers a single pass.
package watch

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 300 * time.Millisecond

// DefaultPatterns select the files whose changes trigger a pass.
var DefaultPatterns = []string{"**/*.go"}

// defaultIgnores are never watched. Generated artifacts, their sidecars and
// the writer's temp files would otherwise retrigger the pass that wrote them.
var defaultIgnores = []string{
	"**/.git/**",
	"**/vendor/**",
	"**/testdata/**",
	"**/*.gen.go",
	"**/_*.unformatted.go",
	"**/.*",
}

// Config holds the parameters for a Watcher.
type Config struct {
	// BaseDir is the root of the watched tree, defaulting to the working
	// directory.
	BaseDir string
	// Patterns are doublestar globs relative to BaseDir; empty means
	// DefaultPatterns.
	Patterns []string
	// Ignore adds to the built-in ignores.
	Ignore   []string
	Debounce time.Duration
	// OnChange receives the changed paths relative to BaseDir, sorted.
	OnChange func(ctx context.Context, changed []string) error
	Logger   *zap.Logger
}

// Watcher fires a debounced callback when matching files change.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	patterns []string
	ignores  []string
	debounce time.Duration
	baseDir  string
	log      *zap.Logger
	started  atomic.Bool
}

// New creates a Watcher and registers every non-ignored directory under
// BaseDir.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "watch: determine working directory")
		}

		baseDir = wd
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Wrap(err, "watch: resolve base directory")
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	ignores := slices.Concat(defaultIgnores, cfg.Ignore)

	for _, pat := range slices.Concat(patterns, ignores) {
		if !doublestar.ValidatePattern(pat) {
			return nil, errors.Newf("watch: invalid pattern %q", pat)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch: create fsnotify watcher")
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: patterns,
		ignores:  ignores,
		debounce: debounce,
		baseDir:  absBase,
		log:      log,
	}

	if err := w.addDirectories(); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. A
// callback never overlaps another; changes arriving meanwhile are kept for
// the next one. Run must be called once.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}

		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()

			return
		}
		defer running.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}

		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.log.Error("watch callback failed", zap.Error(err))
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()

		if err := w.fsw.Close(); err != nil {
			w.log.Warn("closing fsnotify watcher", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil || !w.Matches(rel) {
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

			w.log.Warn("fsnotify error", zap.Error(err))
		}
	}
}

// Matches reports whether a change to rel, relative to BaseDir, triggers a
// callback.
func (w *Watcher) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	if matchAny(w.ignores, rel) {
		return false
	}

	return matchAny(w.patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}

	return false
}

func (w *Watcher) ignoredDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return false
	}

	return matchAny(w.ignores, rel) || matchAny(w.ignores, rel+"/")
}

// addDirectories registers every non-ignored directory under BaseDir.
// Inaccessible directories are skipped.
func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.log.Warn("skipping inaccessible path", zap.String("path", path), zap.Error(walkErr))
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(w.baseDir, path)
		if err != nil {
			return nil
		}

		if w.ignoredDir(rel) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "watch: add directory %q", path)
		}

		return nil
	})

	return errors.Wrap(err, "watch: walk directory tree")
}

// maybeAddDir extends the watch to a directory created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.ignoredDir(rel) {
		return
	}

	if err := w.fsw.Add(path); err != nil {
		w.log.Warn("watch new directory", zap.String("path", path), zap.Error(err))
	}
}
