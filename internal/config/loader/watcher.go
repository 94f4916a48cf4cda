package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatcherStarted is returned by a second call to Watcher.Start.
var ErrWatcherStarted = errors.New("watcher already started")

// Handler receives the reloaded file. f is nil when the file was removed.
type Handler func(f *File, err error)

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle before
// reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLoader sets the loader used to read the file.
func WithLoader(l *Loader) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.loader = l
		}
	}
}

// WithLogger sets the logger used for watch errors.
func WithLogger(logger *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher reloads one configuration file whenever it changes.
type Watcher struct {
	path     string
	handler  Handler
	loader   *Loader
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// NewWatcher creates a watcher for path that calls handler after each
// change.
func NewWatcher(path string, handler Handler, opts ...WatchOption) *Watcher {
	w := &Watcher{
		path:     path,
		handler:  handler,
		loader:   New(),
		debounce: 100 * time.Millisecond,
		logger:   zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The file's directory is watched rather than the
// file itself so that editors that save by renaming are still seen. The
// watcher stops when ctx is cancelled; Done is closed once it has. A
// Watcher runs once: after a successful Start, later calls return
// ErrWatcherStarted.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrWatcherStarted
	}

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watching %s: %w", abs, err)
	}

	w.started = true
	go w.loop(ctx, fsw, abs)
	return nil
}

// Done is closed when the watcher has stopped.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, path string) {
	defer close(w.done)
	defer fsw.Close()

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
				!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
				continue
			}
			reload = time.After(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.String("path", path), zap.Error(err))

		case <-reload:
			reload = nil
			f, err := w.loader.Load(path)
			w.logger.Debug("config reloaded", zap.String("path", path), zap.Error(err))
			w.handler(f, err)
		}
	}
}
