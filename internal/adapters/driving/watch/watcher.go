// Package watch imports tabular files dropped into a directory.
package watch

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

	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
	"github.com/custodia-labs/recordbook/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is imported.
const DefaultDebounce = 250 * time.Millisecond

// Result reports one import triggered by the watcher.
type Result struct {
	Path   string
	Import *driving.ImportResult
	Err    error
}

// Watcher imports every supported file created or rewritten in a directory
// into one module.
type Watcher struct {
	transfer driving.TransferService
	formats  driven.TabularRegistry
	moduleID string
	dir      string
	delay    time.Duration
	onImport func(Result)

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period per path.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.delay = d
	}
}

// WithOnImport registers a callback invoked after each import attempt.
func WithOnImport(fn func(Result)) Option {
	return func(w *Watcher) {
		w.onImport = fn
	}
}

// New creates a watcher for dir that imports into moduleID.
func New(
	transfer driving.TransferService,
	formats driven.TabularRegistry,
	moduleID, dir string,
	opts ...Option,
) *Watcher {
	w := &Watcher{
		transfer: transfer,
		formats:  formats,
		moduleID: moduleID,
		dir:      dir,
		delay:    DefaultDebounce,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory until ctx is cancelled.
// Pending imports are abandoned; in-flight imports finish before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch dir: %s is not a directory", w.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	defer w.stop()

	logger.Info("watching %s for %s imports", w.dir, w.moduleID)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.handle(ctx, event)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			logger.Warnw("fsnotify error", "dir", w.dir, "err", wErr)
		}
	}
}

// handle filters an event and schedules an import for its path.
func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	// Editors and spreadsheet apps write lock and temp files next to the real one.
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return
	}
	if !w.formats.Supports(event.Name) {
		return
	}
	logger.Debug("watch event %s on %s", event.Op, event.Name)
	w.schedule(ctx, event.Name)
}

// schedule (re)arms the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if t, ok := w.timers[path]; ok && t.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.delay, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		w.importFile(ctx, path)
	})
	w.timers[path] = timer
}

// stop cancels pending timers and waits for running imports.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	res := Result{Path: path}
	defer func() {
		if w.onImport != nil {
			w.onImport(res)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		res.Err = err
		logger.Warnw("watched file unreadable", "path", path, "err", err)
		return
	}
	defer f.Close()

	res.Import, res.Err = w.transfer.Import(ctx, w.moduleID, filepath.Base(path), f)
	if res.Err != nil {
		logger.Warnw("watched file not imported", "path", path, "err", res.Err)
		return
	}
	logger.Infow("watched file imported",
		"path", path,
		"module", w.moduleID,
		"imported", res.Import.Imported,
		"skipped_empty", res.Import.SkippedEmpty,
	)
}
