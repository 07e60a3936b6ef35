package blog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/numen-cli/internal/logger"
)

// DefaultDebounce batches the bursts of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Reloader is anything that can re-read its content.
type Reloader interface {
	Reload() error
}

// Watcher reloads a Reloader when .md files in a directory change.
// A Watcher runs once; create a new one to watch again.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	target   Reloader
	dir      string
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool

	// reloads counts completed reloads.
	reloads int
}

// NewWatcher creates a watcher for dir. A debounce of zero uses DefaultDebounce.
func NewWatcher(dir string, target Reloader, debounce time.Duration) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("blog watcher: directory is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("blog watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		target:   target,
		dir:      dir,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if w.stopped {
		return errors.New("blog watcher: already stopped")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("blog watcher: create %s: %w", w.dir, err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("blog watcher: watch %s: %w", w.dir, err)
	}
	logger.Debug("blog watcher: watching %s", w.dir)

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	if wasRunning {
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logger.Warn("blog watcher: close: %v", err)
	}
}

// Run watches until ctx is cancelled. It suits errgroup.Go.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-w.doneCh:
	}
	w.Stop()
	return nil
}

// Reloads returns how many reloads have completed.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// pending is nil while no reload is scheduled
	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("blog watcher: %s %s", event.Op, filepath.Base(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("blog watcher: %v", err)

		case <-pending:
			pending = nil
			if err := w.target.Reload(); err != nil {
				logger.Warn("blog watcher: reload failed: %v", err)
				continue
			}
			w.mu.Lock()
			w.reloads++
			w.mu.Unlock()
		}
	}
}

// relevant reports whether event changes the set of posts.
func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, postExt) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
