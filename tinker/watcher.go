/*
 * watcher.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package tinker

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// outputPattern matches the structures written by distgeom.
var outputPattern = regexp.MustCompile(`\.\d{3}$`)

// Watcher follows a run directory and reports how many distgeom structures
// have been written so far.
type Watcher struct {
	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	dir        string
	seen       map[string]bool
	onProgress func(int)
	log        *zap.Logger
	stopCh     chan struct{}
	doneCh     chan struct{}
	running    bool
	stopped    bool
}

// NewWatcher returns a watcher for dir. onProgress is called from the
// watcher goroutine with the number of structures found, every time it
// grows.
func NewWatcher(dir string, onProgress func(int), log *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if onProgress == nil {
		onProgress = func(int) {}
	}
	return &Watcher{
		watcher:    w,
		dir:        dir,
		seen:       make(map[string]bool),
		onProgress: onProgress,
		log:        log,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (W *Watcher) Start(ctx context.Context) error {
	W.mu.Lock()
	if W.running || W.stopped {
		W.mu.Unlock()
		return nil
	}
	if err := W.watcher.Add(W.dir); err != nil {
		W.mu.Unlock()
		return err
	}
	W.running = true
	W.mu.Unlock()
	W.scan()
	go W.run(ctx)
	return nil
}

// scan counts the structures already in the directory.
func (W *Watcher) scan() {
	entries, err := os.ReadDir(W.dir)
	if err != nil {
		W.log.Warn("can't read run directory", zap.String("dir", W.dir), zap.Error(err))
		return
	}
	for _, e := range entries {
		W.add(filepath.Join(W.dir, e.Name()))
	}
}

func (W *Watcher) add(name string) {
	if !outputPattern.MatchString(name) {
		return
	}
	W.mu.Lock()
	if W.seen[name] {
		W.mu.Unlock()
		return
	}
	W.seen[name] = true
	n := len(W.seen)
	W.mu.Unlock()
	W.log.Debug("structure written", zap.String("file", filepath.Base(name)), zap.Int("done", n))
	W.onProgress(n)
}

// Count returns the number of structures seen.
func (W *Watcher) Count() int {
	W.mu.Lock()
	defer W.mu.Unlock()
	return len(W.seen)
}

func (W *Watcher) run(ctx context.Context) {
	defer close(W.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-W.stopCh:
			return
		case event, ok := <-W.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				W.add(event.Name)
			}
		case err, ok := <-W.watcher.Errors:
			if !ok {
				return
			}
			W.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Stop stops the watcher and waits for its goroutine to exit. It can be
// called more than once, and before Start.
func (W *Watcher) Stop() {
	W.mu.Lock()
	if W.stopped {
		W.mu.Unlock()
		return
	}
	W.stopped = true
	running := W.running
	W.running = false
	W.mu.Unlock()

	if running {
		close(W.stopCh)
		<-W.doneCh
	} else {
		close(W.doneCh)
	}
	if err := W.watcher.Close(); err != nil {
		W.log.Warn("error closing watcher", zap.Error(err))
	}
}

// Done is closed when the watcher goroutine exits.
func (W *Watcher) Done() <-chan struct{} {
	return W.doneCh
}
