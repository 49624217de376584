// Package watch triggers debounced callbacks when site inputs change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// DefaultDebounce coalesces editor save bursts into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Watcher observes individual files and directory trees.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New watches files (by their parent directory, so editors that replace
// files are seen) and every directory below dirs. Missing paths are skipped.
func New(files, dirs []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{files: map[string]bool{}, debounce: DefaultDebounce, watcher: fw}
	for _, o := range opts {
		o(w)
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		w.files[abs] = true
		if err := fw.Add(filepath.Dir(abs)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
		}
	}
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", d, err)
		}
		if _, err := w.watchDir(abs); err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.dirs = append(w.dirs, abs)
	}
	return w, nil
}

// watchDir watches the tree at dir, or its nearest existing ancestor while
// dir does not exist yet. It reports whether dir itself is watched.
func (w *Watcher) watchDir(dir string) (bool, error) {
	for {
		p, err := nearestExisting(dir)
		if err != nil {
			return false, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		if p == dir {
			return true, w.addTree(dir)
		}
		if p == "" {
			return false, nil
		}
		if err := w.watcher.Add(p); err != nil {
			return false, fmt.Errorf("failed to watch %s: %w", p, err)
		}
		// A child created before the watch was registered sends no event.
		if again, err := nearestExisting(dir); err != nil || again == p {
			return false, nil
		}
	}
}

// nearestExisting returns dir or its closest ancestor that is an existing
// directory, or "" when none is.
func nearestExisting(dir string) (string, error) {
	for p := dir; ; p = filepath.Dir(p) {
		info, err := os.Stat(p)
		switch {
		case err == nil && info.IsDir():
			return p, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR):
			return "", err
		}
		if p == filepath.Dir(p) {
			return "", nil
		}
	}
}

// ancestorCreated handles a directory appearing on the way to a watched
// tree that did not exist yet. It reports whether a tree became watched.
func (w *Watcher) ancestorCreated(name string) bool {
	prefix := name + string(filepath.Separator)
	found := false
	for _, d := range w.dirs {
		if !strings.HasPrefix(d, prefix) {
			continue
		}
		watched, err := w.watchDir(d)
		if err != nil {
			slog.Warn("Failed to watch new directory", logfields.Path(d), logfields.Error(err))
			continue
		}
		found = found || watched
	}
	return found
}

// addTree registers root and its subdirectories.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return nil
}

// relevant reports whether an event path belongs to a watched file or tree.
func (w *Watcher) relevant(name string) bool {
	if w.files[name] {
		return true
	}
	for _, d := range w.dirs {
		if name == d || strings.HasPrefix(name, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run calls onChange after each quiet period following relevant events and
// blocks until ctx is done. Callback errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		timer  *time.Timer
		fire   <-chan time.Time
		reason string
	)
	schedule := func(name string) {
		reason = name
		if timer == nil {
			timer = time.NewTimer(w.debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		}
		fire = timer.C
	}
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			created := event.Op&fsnotify.Create == fsnotify.Create
			if !w.relevant(event.Name) {
				if created && isDir(event.Name) && w.ancestorCreated(event.Name) {
					schedule(event.Name)
				}
				continue
			}
			if created && isDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			schedule(event.Name)

		case <-fire:
			fire = nil
			slog.Info("Reloading after change", logfields.Path(reason))
			if err := onChange(ctx); err != nil {
				slog.Error("Reload failed", logfields.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
