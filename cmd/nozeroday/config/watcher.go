// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler is called with the freshly parsed configuration after a
// debounced change to the config file.
type ReloadHandler func(cfg AppConfig)

// Watcher reloads the configuration when the file changes on disk.
//
// Editors usually save via rename-replace, so the watcher observes the
// config directory rather than the file itself and filters events down
// to the one path it cares about. Changes are debounced: the handler
// runs once per editing burst, not once per write event.
//
// # Thread Safety
//
// Safe for concurrent use. The handler is called from a single
// goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	handler  ReloadHandler
	debounce time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOptions configures the Watcher.
type WatcherOptions struct {
	// DebounceWindow is how long to wait for more changes before
	// reloading. Default: 200ms
	DebounceWindow time.Duration
}

// NewWatcher creates a watcher for the given config file path. Call
// Start to begin watching and Stop when done.
func NewWatcher(path string, handler ReloadHandler, opts *WatcherOptions) (*Watcher, error) {
	debounce := 200 * time.Millisecond
	if opts != nil && opts.DebounceWindow > 0 {
		debounce = opts.DebounceWindow
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     path,
		watcher:  fsw,
		handler:  handler,
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The goroutine exits when Stop is called or the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.loop(ctx)
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			cfg, err := ReadFile(w.path)
			if err != nil {
				// A torn write can land here; the next event retries.
				continue
			}
			w.handler(cfg)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
