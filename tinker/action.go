/*
 * action.go, part of cmview.
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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reporter receives the progress and the result of a RunAction. Its methods
// are called from the run's goroutines.
type Reporter interface {
	// SendStatus is called when the run enters a new step.
	SendStatus(State)
	// FilesDone is called with the number of structures written so far.
	FilesDone(n int)
	// ReturnResult is called with the PDB file of the refined structure. The
	// file is removed when ReturnResult returns, unless files are kept.
	ReturnResult(pdbFile string)
	// Failed is called when the run ends with an error, cancellation
	// included.
	Failed(err error)
}

// RunAction is a Tinker run in the background, in its own temporary
// directory.
type RunAction struct {
	runner    *Runner
	reporter  Reporter
	tempRoot  string
	keepFiles bool
	dir       string
	log       *zap.Logger

	cancel  context.CancelFunc
	watcher *Watcher
	wg      sync.WaitGroup
	result  string
	err     error
}

// ActionOption configures a RunAction.
type ActionOption func(*RunAction)

// WithRunner sets the runner used. By default it is NewRunner().
func WithRunner(R *Runner) ActionOption { return func(A *RunAction) { A.runner = R } }

// WithTempRoot sets where the run directory is created. By default it is
// os.TempDir().
func WithTempRoot(dir string) ActionOption { return func(A *RunAction) { A.tempRoot = dir } }

// KeepFiles keeps the run directory after the run.
func KeepFiles(keep bool) ActionOption { return func(A *RunAction) { A.keepFiles = keep } }

func createTempDir(root, prefix string) (string, error) {
	for range 10 {
		dir := filepath.Join(root, fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()))
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("could not create temp directory in %s", root)
}

// NewRunAction starts refining src in the background. It returns once the
// run directory exists and the run and its watcher are started.
func NewRunAction(ctx context.Context, reporter Reporter, src Source, par Parallel, ref Refinement, models int, opts ...ActionOption) (*RunAction, error) {
	A := &RunAction{reporter: reporter, tempRoot: os.TempDir()}
	for _, o := range opts {
		o(A)
	}
	if A.runner == nil {
		A.runner = NewRunner()
	}
	A.log = A.runner.Logger()
	dir, err := createTempDir(A.tempRoot, "tinker")
	if err != nil {
		return nil, newError(ErrInput, "", Init, "creating run directory", err, "NewRunAction")
	}
	A.dir = dir
	A.watcher, err = NewWatcher(dir, reporter.FilesDone, A.log)
	if err != nil {
		os.RemoveAll(dir)
		return nil, newError(ErrInput, "", Init, "creating watcher", err, "NewRunAction")
	}
	rctx, cancel := context.WithCancel(ctx)
	A.cancel = cancel
	if err := A.watcher.Start(rctx); err != nil {
		cancel()
		A.watcher.Stop()
		os.RemoveAll(dir)
		return nil, newError(ErrInput, "", Init, "starting watcher", err, "NewRunAction")
	}
	A.log.Info("tinker run started", zap.String("dir", dir), zap.Stringer("parallel", par),
		zap.Stringer("refinement", ref), zap.Int("models", models))

	A.wg.Add(1)
	go func() {
		defer A.wg.Done()
		A.result, A.err = A.runner.Run(rctx, dir, src, par, ref, models, reporter.SendStatus)
		A.watcher.scan() //events still queued when the run ends
		A.watcher.Stop()
		if A.err != nil {
			A.log.Error("tinker run failed", zap.Error(A.err))
			reporter.Failed(A.err)
		} else {
			reporter.ReturnResult(A.result)
		}
		if !A.keepFiles {
			if err := os.RemoveAll(dir); err != nil {
				A.log.Warn("can't remove run directory", zap.String("dir", dir), zap.Error(err))
			}
		}
	}()
	return A, nil
}

// Dir returns the run directory.
func (A *RunAction) Dir() string {
	return A.dir
}

// Cancel stops the watcher and kills the running Tinker program.
func (A *RunAction) Cancel() {
	A.watcher.Stop()
	A.cancel()
}

// Wait blocks until the run is over and returns its error. The result path
// is only valid if files are kept.
func (A *RunAction) Wait() (string, error) {
	A.wg.Wait()
	A.cancel()
	return A.result, A.err
}
