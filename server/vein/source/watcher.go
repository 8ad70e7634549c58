package source

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// WatcherConfig holds the settings of a Watcher.
type WatcherConfig struct {
	// Dir is the directory tree watched for changes to definitions.
	Dir string
	// Debounce is the time waited after a change before reporting it, so that a burst of changes is reported
	// once. If zero, 500ms is used.
	Debounce time.Duration
	// Log is the Logger changes are logged to. If nil, Log is set to slog.Default().
	Log *slog.Logger
}

// Watcher watches a directory tree of definitions and reports when files in it change.
type Watcher struct {
	conf WatcherConfig
	w    *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a Watcher for the directory tree passed. Directories created later are watched too.
func NewWatcher(conf WatcherConfig) (*Watcher, error) {
	if conf.Debounce <= 0 {
		conf.Debounce = 500 * time.Millisecond
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	conf.Log = conf.Log.With("subsystem", "vein-watcher")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	w := &Watcher{conf: conf, w: fw}
	if err := w.addTree(conf.Dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := w.w.Add(p); err != nil {
			return errors.Wrapf(err, "watch %v", p)
		}
		return nil
	})
}

// Run reports changes to definitions by calling onChange until ctx is cancelled or the Watcher is closed. onChange
// is never called concurrently with itself.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var callMu sync.Mutex
	call := func() {
		callMu.Lock()
		defer callMu.Unlock()
		if ctx.Err() == nil {
			onChange()
		}
	}
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			w.handle(event, call)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.conf.Log.Warn("Watcher error.", "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, call func()) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// Watch new directories so that definitions added to them are picked up.
			if err := w.addTree(event.Name); err != nil {
				w.conf.Log.Warn("Could not watch new directory.", "dir", event.Name, "err", err)
			}
			w.schedule(call)
			return
		}
	}
	if event.Op == fsnotify.Chmod || !Supported(event.Name) {
		return
	}
	w.conf.Log.Debug("Definition changed.", "file", event.Name, "op", event.Op.String())
	w.schedule(call)
}

func (w *Watcher) schedule(call func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.conf.Debounce, call)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops watching the directory tree.
func (w *Watcher) Close() error {
	return w.w.Close()
}
