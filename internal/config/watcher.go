// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher hot-reloads the configuration file and notifies the server of changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string) *Watcher {
	return &Watcher{path: path, stop: make(chan struct{})}
}

// Start begins watching the config file. onChange receives every successfully
// reloaded configuration; parse failures are logged and skipped.
func (w *Watcher) Start(onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		w.watcher = nil
		return err
	}

	go func() {
		for {
			select {
			case <-w.stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					log.Infof("Config file changed (%s), reloading...", event.Name)
					// Editors replace files rather than writing in place; give
					// the new file a moment to land before parsing.
					time.Sleep(100 * time.Millisecond)
					cfg, err := LoadConfigOptional(w.path, true)
					if err != nil {
						log.Errorf("Failed to reload config: %v", err)
						continue
					}
					onChange(cfg)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("Config watcher error: %v", err)
			}
		}
	}()

	return nil
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	if w.watcher != nil {
		close(w.stop)
		w.watcher.Close()
		w.watcher = nil
	}
}
