// Package watcher monitors the input directory and feeds newly dropped
// transcripts into the pipeline.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
)

// Handler processes one transcript file.
type Handler func(ctx context.Context, path string) error

// Watcher reacts to transcript files created in a directory. Each file is
// handled in its own goroutine; a counting semaphore bounds how many runs
// execute at once.
type Watcher struct {
	dir     string
	handler Handler
	log     logger.Logger
	fsw     *fsnotify.Watcher
	sem     chan struct{}
	wg      sync.WaitGroup

	// settleDelay gives the writer time to finish before the file is read.
	settleDelay time.Duration
}

// New creates a Watcher over dir. maxConcurrent <= 0 defaults to 1: watch
// runs share one output directory, so serial is the safe default.
func New(dir string, handler Handler, log logger.Logger, maxConcurrent int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &Watcher{
		dir:         dir,
		handler:     handler,
		log:         log,
		fsw:         fsw,
		sem:         make(chan struct{}, maxConcurrent),
		settleDelay: 500 * time.Millisecond,
	}, nil
}

// Start blocks, dispatching handler calls until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.log.Info(ctx, "watching %s for transcripts (.txt)", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.log.Info(ctx, "waiting for in-flight runs to finish...")
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isTranscript(event.Name) {
				w.log.Debug(ctx, "ignoring %s", event.Name)
				continue
			}

			w.log.Info(ctx, "new transcript: %s", event.Name)
			time.Sleep(w.settleDelay)

			select {
			case w.sem <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.sem }()
					if err := w.handler(ctx, path); err != nil {
						w.log.Error(ctx, "failed to process %s: %v", path, err)
					}
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error(ctx, "watcher error: %v", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

func isTranscript(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".txt"
}
