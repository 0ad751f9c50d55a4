package pilot

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

// Watcher reloads a Store when the assumptions file changes on disk.
// It watches the parent directory because editors typically replace
// files by rename, which would drop a watch held on the file itself.
// Rapid saves are debounced so one edit burst triggers one reload.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	store   *Store
	path    string
	log     *zap.Logger
	pending map[string]time.Time
	settle  time.Duration
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	reloads int
}

// NewWatcher prepares a watcher that pushes reloaded assumptions from
// path into store. A nil logger is replaced with a no-op one.
func NewWatcher(path string, store *Store, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.IOWrap(err, errors.ErrIOWatchFailed, "create filesystem watcher")
	}
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, errors.IOWrapf(err, errors.ErrIOWatchFailed, "resolve %s", path)
	}

	return &Watcher{
		fsw:     fsw,
		store:   store,
		path:    abs,
		log:     log,
		pending: make(map[string]time.Time),
		settle:  500 * time.Millisecond,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs until Stop
// is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return errors.IOWrapf(err, errors.ErrIOWatchFailed, "watch %s", dir)
	}
	w.log.Info("watching assumptions file", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.fsw.Close()
}

// Reloads reports how many times the file was successfully reloaded.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			w.processSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	w.pending[w.path] = time.Now()
	w.mu.Unlock()
}

// processSettled reloads once events have been quiet past the settle
// window.
func (w *Watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	ready := false
	for path, at := range w.pending {
		if now.Sub(at) >= w.settle {
			delete(w.pending, path)
			ready = true
		}
	}
	w.mu.Unlock()

	if ready {
		w.reload()
	}
}

func (w *Watcher) reload() {
	a, err := Load(w.path)
	if err != nil {
		w.log.Warn("assumptions reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	if err := w.store.Update(a); err != nil {
		w.log.Warn("assumptions rejected", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.reloads++
	n := w.reloads
	w.mu.Unlock()
	w.log.Info("assumptions reloaded", zap.String("path", w.path), zap.Int("count", n))
}
