package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/emailkit/pkg/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before regenerating.
const DefaultDebounce = 150 * time.Millisecond

// RebuildFunc regenerates the output after a source change.
type RebuildFunc func(ctx context.Context) error

// Watcher calls a RebuildFunc whenever files below its directories change.
// Rebuilds never overlap. A failing rebuild is logged and the previous
// output stays in place.
type Watcher struct {
	dirs     []string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger
}

// WatcherOption configures Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher creates a watcher for dirs and their sub-directories.
func NewWatcher(rebuild RebuildFunc, dirs []string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dirs:     dirs,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. Directories that do not exist are skipped;
// directories created later below a watched one are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatch, err)
	}
	defer fw.Close()

	watched := 0
	for _, dir := range w.dirs {
		n, err := w.addTree(fw, dir)
		if err != nil {
			return err
		}
		watched += n
	}
	w.logger.InfoContext(ctx, "watching template sources", slog.Int("directories", watched))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if _, err := w.addTree(fw, ev.Name); err != nil {
						w.logger.WarnContext(ctx, "watch new directory", slog.String("path", ev.Name), logger.Error(err))
					}
				}
			}
			w.logger.DebugContext(ctx, "source changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "watcher error", logger.Error(err))

		case <-timer.C:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				w.logger.ErrorContext(ctx, "regeneration failed", logger.Error(err))
				continue
			}
			w.logger.InfoContext(ctx, "regenerated", logger.Duration(time.Since(start)))
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) (int, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("skipping missing directory", slog.String("path", root))
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrWatch, root, err)
	}
	if !info.IsDir() {
		return 0, nil
	}

	n := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("%w: %s: %v", ErrWatch, root, err)
	}
	return n, nil
}
