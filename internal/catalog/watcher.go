// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/ManuGH/qvdata/dataset"
	"github.com/ManuGH/qvdata/internal/log"
)

// WatchOptions tune a Watcher.
type WatchOptions struct {
	// Interval is the minimum time between two rescans.
	Interval time.Duration
	// Debounce collapses bursts of events into one rescan.
	Debounce time.Duration
	// Recursive also watches subdirectories present at start.
	Recursive bool
	// OnScan is called after every rescan, successful or not.
	OnScan func(*Scan, error)
}

// Watcher rescans a dataset root whenever dataset files in it change.
type Watcher struct {
	scanner *Scanner
	root    string
	opts    WatchOptions
}

// NewWatcher creates a watcher for root. Call Run to start it.
func NewWatcher(scanner *Scanner, root string, opts WatchOptions) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	return &Watcher{scanner: scanner, root: root, opts: opts}
}

// Run performs an initial scan and then rescans on change until ctx is
// cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	logger := log.WithComponent("catalog")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addDirs(fw); err != nil {
		return err
	}

	logger.Info().
		Str(log.FieldEvent, "catalog.watcher_started").
		Str(log.FieldRoot, w.root).
		Dur("interval", w.opts.Interval).
		Msg("watching dataset root for changes")

	limiter := rate.NewLimiter(rate.Every(w.opts.Interval), 1)
	w.rescan(ctx, limiter)

	// Debounce timer; nil channel until armed.
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().
				Str(log.FieldEvent, "catalog.watcher_stopped").
				Msg("catalog watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug().
				Str(log.FieldEvent, "catalog.file_changed").
				Str(log.FieldPath, event.Name).
				Str("op", event.Op.String()).
				Msg("dataset file changed")

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.rescan(ctx, limiter)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error().
				Err(err).
				Str(log.FieldEvent, "catalog.watcher_error").
				Msg("catalog watcher error")
		}
	}
}

func (w *Watcher) rescan(ctx context.Context, limiter *rate.Limiter) {
	if err := limiter.Wait(ctx); err != nil {
		// Context cancelled while waiting.
		return
	}
	sc, err := w.scanner.Scan(ctx, w.root)
	if w.opts.OnScan != nil {
		w.opts.OnScan(sc, err)
	}
}

func (w *Watcher) addDirs(fw *fsnotify.Watcher) error {
	if !w.opts.Recursive {
		if err := fw.Add(w.root); err != nil {
			return fmt.Errorf("watch %s: %w", w.root, err)
		}
		return nil
	}
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether an event touches a dataset file.
func relevant(event fsnotify.Event) bool {
	if !dataset.IsDatasetFile(filepath.Base(event.Name)) {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

