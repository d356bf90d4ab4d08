/*
 * tinker.go, part of cmview.
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

package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmview/cmview/model"
	"github.com/cmview/cmview/rig"
	"github.com/cmview/cmview/tinker"
)

// tinkerReporter prints the progress of a run and, when it is over, loads
// the refined structure as a second model and compares it with the first.
type tinkerReporter struct {
	mu     sync.Mutex
	out    io.Writer
	log    *zap.Logger
	first  *model.PdbFileModel
	flags  *modelFlags
	app    *app
	models int
	err    error
}

func (R *tinkerReporter) SendStatus(s tinker.State) {
	R.mu.Lock()
	defer R.mu.Unlock()
	fmt.Fprintf(R.out, "tinker: %s\n", s)
}

func (R *tinkerReporter) FilesDone(n int) {
	R.log.Info("structures written", zap.Int("done", n), zap.Int("total", R.models))
}

func (R *tinkerReporter) ReturnResult(pdbFile string) {
	F := *R.flags
	F.chain = ""
	F.model = 1
	F.ensemble = false
	second, err := F.load(R.app, pdbFile)
	R.mu.Lock()
	defer R.mu.Unlock()
	if err != nil {
		R.err = err
		return
	}
	defer second.Close()
	common, onlyFirst, onlySecond := rig.Compare(R.first.Graph(), second.Graph())
	total := R.first.Graph().EdgeCount()
	fmt.Fprintf(R.out, "refined structure: %d of %d contacts kept, %d lost, %d new\n", len(common), total, len(onlyFirst), len(onlySecond))
}

func (R *tinkerReporter) Failed(err error) {
	R.log.Warn("tinker run failed", zap.Error(err))
}

func tinkerCmd(A *app) *cobra.Command {
	var F modelFlags
	var models, workers int
	var parallel, annealing, keep bool
	c := &cobra.Command{
		Use:   "tinker FILE",
		Short: "Rebuild the structure from its contact map with Tinker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := F.load(A, args[0])
			if err != nil {
				return err
			}
			defer M.Close()
			cfg := A.cfg.Tinker
			if workers == 0 {
				workers = cfg.Workers
			}
			ropts := []tinker.Option{tinker.WithLogger(A.log), tinker.WithBinDir(cfg.BinDir)}
			if cfg.Param != "" {
				ropts = append(ropts, tinker.WithParam(cfg.Param))
			}
			if cfg.Force > 0 {
				ropts = append(ropts, tinker.WithForce(cfg.Force))
			}
			if workers > 0 {
				ropts = append(ropts, tinker.WithWorkers(workers))
			}
			par, ref := tinker.None, tinker.Minimization
			if parallel {
				par = tinker.Local
			}
			if annealing {
				ref = tinker.SimulatedAnnealing
			}
			rep := &tinkerReporter{out: A.out, log: A.log, first: M, flags: &F, app: A, models: models}
			run, err := tinker.NewRunAction(cmd.Context(), rep, M, par, ref, models,
				tinker.WithRunner(tinker.NewRunner(ropts...)), tinker.WithTempRoot(A.cfg.TempDir), tinker.KeepFiles(keep || cfg.KeepFiles))
			if err != nil {
				return err
			}
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-cmd.Context().Done():
					run.Cancel()
				case <-done:
				}
			}()
			out, err := run.Wait()
			if err != nil {
				return err
			}
			if keep || cfg.KeepFiles {
				fmt.Fprintf(A.out, "result kept in %s\n", out)
			}
			return rep.err
		},
	}
	F.register(c)
	c.Flags().IntVarP(&models, "models", "n", 10, "number of structures to build")
	c.Flags().IntVar(&workers, "workers", 0, "distgeom processes for --parallel (default from config, or the number of CPUs)")
	c.Flags().BoolVar(&parallel, "parallel", false, "split the structures among local workers")
	c.Flags().BoolVar(&annealing, "annealing", false, "refine with simulated annealing instead of minimization")
	c.Flags().BoolVar(&keep, "keep", false, "keep the run directory")
	return c
}
