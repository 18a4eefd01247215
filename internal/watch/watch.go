// Package watch reprocesses source images as they are added or changed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"pixelspriter/internal/config"
	"pixelspriter/internal/pipeline"
	"pixelspriter/internal/ui"
)

const DefaultDebounce = 500 * time.Millisecond

// Processor is the part of the batch driver a watcher needs.
type Processor interface {
	Process(ctx context.Context, src pipeline.Source) (pipeline.Result, error)
}

// Watcher monitors the category directories and rebuilds the sheet of any image that is
// created or written.
type Watcher struct {
	cfg       *config.Config
	processor Processor
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	category  map[string]string
	events    chan pipeline.Result

	mu     sync.Mutex
	timers map[string]*time.Timer
	busy   sync.Mutex
}

func New(cfg *config.Config, processor Processor) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		cfg:       cfg,
		processor: processor,
		watcher:   fsWatcher,
		debounce:  DefaultDebounce,
		category:  make(map[string]string),
		events:    make(chan pipeline.Result, 16),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// SetDebounce changes how long a file must be quiet before it is processed.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Results delivers every successfully rebuilt sheet. Results are dropped when nobody reads.
func (w *Watcher) Results() <-chan pipeline.Result {
	return w.events
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for _, cat := range w.cfg.Categories {
		dir := w.cfg.SourceDir(cat)
		if err := w.watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch folder %s", dir)
		}
		w.category[filepath.Clean(dir)] = cat
		ui.Info("Watching folder: " + dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			ui.Warning(fmt.Sprintf("Watcher error: %v", err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.handle(ctx, path)
	})
}

func (w *Watcher) handle(ctx context.Context, path string) {
	if ctx.Err() != nil || !pipeline.Eligible(w.cfg, path) {
		return
	}
	cat, ok := w.category[filepath.Dir(path)]
	if !ok {
		return
	}

	// One sheet at a time, the same as a sequential batch.
	w.busy.Lock()
	defer w.busy.Unlock()

	src := pipeline.NewSource(cat, path)
	ui.Info(fmt.Sprintf("Change detected: %s", src))
	res, err := w.processor.Process(ctx, src)
	if err != nil {
		ui.Error(err.Error())
		return
	}
	ui.Success("Rebuilt " + res.Sheet)

	select {
	case w.events <- res:
	default:
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.watcher.Close()
}
