package content

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates a Library's cached collections when their directories change.
type Watcher struct {
	lib      *Library
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	root     string
	dirs     map[string]Kind

	mu      sync.Mutex
	pending map[Kind]*time.Timer
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a Watcher for every collection directory of lib.
func NewWatcher(lib *Library, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	dirs := make(map[string]Kind, len(Kinds))
	for _, k := range Kinds {
		dirs[filepath.Clean(lib.Dir(k))] = k
	}
	return &Watcher{
		lib:      lib,
		watcher:  fw,
		logger:   lib.logger,
		debounce: debounce,
		root:     filepath.Clean(lib.reader.Root()),
		dirs:     dirs,
		pending:  make(map[Kind]*time.Timer),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start adds the content root and the collection directories and begins
// processing events. A collection directory created later is picked up
// through the root watch.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.root); err != nil {
		w.logger.Warn("content root watch skipped", zap.String("dir", w.root), zap.Error(err))
	}
	for dir, kind := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("content watch skipped", zap.String("kind", string(kind)), zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.logger.Info("watching content", zap.String("kind", string(kind)), zap.String("dir", dir))
	}
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	for k, t := range w.pending {
		t.Stop()
		delete(w.pending, k)
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("closing content watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if kind, ok := w.dirs[name]; ok {
				if ev.Has(fsnotify.Create) {
					w.add(name, kind)
				} else {
					w.schedule(kind)
				}
				continue
			}
			if kind, ok := w.dirs[filepath.Dir(name)]; ok {
				w.schedule(kind)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		}
	}
}

// add starts watching a collection directory that appeared after Start.
// Files written before the watch took hold are covered by the invalidation.
func (w *Watcher) add(dir string, kind Kind) {
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("content watch skipped", zap.String("kind", string(kind)), zap.String("dir", dir), zap.Error(err))
		return
	}
	w.logger.Info("watching content", zap.String("kind", string(kind)), zap.String("dir", dir))
	w.schedule(kind)
}

// schedule coalesces bursts of events for kind into one invalidation.
func (w *Watcher) schedule(kind Kind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if t, ok := w.pending[kind]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[kind] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, kind)
		w.mu.Unlock()
		w.lib.Invalidate(kind.Tag())
	})
}
