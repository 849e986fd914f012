package cli

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const (
	watchDebounce = 500 * time.Millisecond
	watchTick     = 100 * time.Millisecond
)

// fileWatcher calls onChange once a burst of writes to any watched file
// has settled. It watches the parent directories so that editors which
// save by rename are still noticed.
type fileWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	files    map[string]bool
	pending  time.Time
	debounce time.Duration
	onChange func(ctx context.Context)
	logger   *log.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func newFileWatcher(paths []string, logger *log.Logger, onChange func(ctx context.Context)) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &fileWatcher{
		watcher:  w,
		files:    make(map[string]bool),
		debounce: watchDebounce,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	return fw, nil
}

// Start runs the event loop in a goroutine.
func (fw *fileWatcher) Start(ctx context.Context) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running {
		return
	}
	fw.running = true
	go fw.run(ctx)
}

// Stop ends the event loop and releases the watcher.
func (fw *fileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh
	if err := fw.watcher.Close(); err != nil {
		fw.logger.Warn("close watcher", "error", err)
	}
}

func (fw *fileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", "error", err)
		case <-ticker.C:
			if fw.due() {
				fw.onChange(ctx)
			}
		}
	}
}

func (fw *fileWatcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !fw.files[abs] {
		return
	}
	fw.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
	fw.mu.Lock()
	fw.pending = time.Now()
	fw.mu.Unlock()
}

// due reports whether a pending change has been quiet for the debounce period.
func (fw *fileWatcher) due() bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.pending.IsZero() || time.Since(fw.pending) < fw.debounce {
		return false
	}
	fw.pending = time.Time{}
	return true
}
