// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the write bursts editors produce into one reload.
const watchDebounce = 250 * time.Millisecond

// Watcher reloads the config file when it changes on disk, so a key or
// provider edited outside the running TUI takes effect without a restart.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	cancel  context.CancelFunc
}

// Watch starts watching the default config path. The returned channel
// delivers each successfully reloaded config; parse failures are skipped
// (the previous config stays in effect).
func Watch(ctx context.Context) (*Watcher, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return WatchPath(ctx, path)
}

// WatchPath watches an explicit config path.
func WatchPath(ctx context.Context, path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: atomic saves replace the inode.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:    path,
		watcher: fw,
		updates: make(chan *Config, 1),
		cancel:  cancel,
	}
	go w.run(ctx)
	return w, nil
}

// Updates delivers reloaded configs.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			cfg, err := LoadFrom(w.path)
			if err != nil {
				continue
			}
			select {
			case w.updates <- cfg:
			default:
				// Consumer is behind; replace the stale pending config.
				select {
				case <-w.updates:
				default:
				}
				w.updates <- cfg
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
