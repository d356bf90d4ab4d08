/*
 * runner.go, part of cmview.
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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cmview/cmview/rig"
	"github.com/cmview/cmview/structure"
)

// Defaults for the restraints and the force field.
const (
	DefaultParam      = "amber99"
	DefaultForce      = 100.0
	DefaultLowerBound = 3.0
	// BaseName is the name input files are written under in the run directory.
	BaseName = "cmview"
	// RefinedName is the name the chosen structure is converted under.
	RefinedName = "refined"
)

// Source is what a run refines: a structure and its contact map. A loaded
// model.PdbFileModel is a Source.
type Source interface {
	Structure() *structure.Structure
	Graph() *rig.Graph
}

// Runner runs the Tinker programs.
type Runner struct {
	binDir  string
	param   string
	force   float64
	lower   float64
	workers int
	log     *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithBinDir sets the directory of the Tinker programs. By default they are
// looked up in the PATH.
func WithBinDir(dir string) Option { return func(R *Runner) { R.binDir = dir } }

// WithParam sets the force field parameter file.
func WithParam(param string) Option { return func(R *Runner) { R.param = param } }

// WithForce sets the force constant of the distance restraints.
func WithForce(force float64) Option { return func(R *Runner) { R.force = force } }

// WithLowerBound sets the lower bound of the distance restraints.
func WithLowerBound(lower float64) Option { return func(R *Runner) { R.lower = lower } }

// WithWorkers sets the number of distgeom processes of Local runs.
func WithWorkers(n int) Option { return func(R *Runner) { R.workers = n } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(R *Runner) { R.log = l } }

// NewRunner returns a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	R := &Runner{
		param:   DefaultParam,
		force:   DefaultForce,
		lower:   DefaultLowerBound,
		workers: runtime.NumCPU(),
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(R)
	}
	if R.workers < 1 {
		R.workers = 1
	}
	return R
}

// Logger returns the runner's logger.
func (R *Runner) Logger() *zap.Logger { return R.log }

func (R *Runner) program(name string) string {
	if R.binDir == "" {
		return name
	}
	return filepath.Join(R.binDir, name)
}

// run executes a Tinker program in dir. The output is logged, and its last
// line is part of the error if the program fails.
func (R *Runner) run(ctx context.Context, dir string, step State, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, R.program(name), args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader("\n")
	cmd.WaitDelay = time.Second
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	R.log.Debug("running tinker program", zap.String("program", name), zap.Strings("args", args), zap.String("dir", dir))
	start := time.Now()
	err := cmd.Run()
	R.log.Debug("tinker program finished", zap.String("program", name), zap.Duration("elapsed", time.Since(start)), zap.Int("output_bytes", out.Len()))
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return newError(ErrProgram, name, step, lastLine(out.String()), err, "run")
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// Run refines src in dir, building models structures with distgeom, and
// returns the path of the PDB file of the best one. status, if not nil, is
// called when each step starts and when the run is done.
func (R *Runner) Run(ctx context.Context, dir string, src Source, par Parallel, ref Refinement, models int, status func(State)) (string, error) {
	if status == nil {
		status = func(State) {}
	}
	S, G := src.Structure(), src.Graph()
	if S == nil || G == nil {
		return "", newError(ErrInput, "", Init, "nothing loaded", nil, "Run")
	}
	if models < 1 {
		return "", newError(ErrInput, "", Init, fmt.Sprintf("%d models requested", models), nil, "Run")
	}
	if G.EdgeCount() == 0 {
		return "", newError(ErrInput, "", Init, "the contact map has no contacts", nil, "Run")
	}

	// The programs run inside dir, so paths passed to them must not be
	// relative to the current directory.
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", newError(ErrInput, "", Init, "", err, "Run")
	}

	status(Init)
	base := filepath.Join(dir, BaseName)
	if err := structure.WritePDBFile(base+".pdb", S); err != nil {
		return "", newError(ErrInput, "", Init, "writing input structure", err, "Run")
	}
	if err := R.run(ctx, dir, Init, "pdbxyz", base+".pdb", R.param); err != nil {
		return "", errDecorate(err, "Run")
	}
	atoms, err := ReadXYZFile(base + ".xyz")
	if err != nil {
		return "", newError(ErrNoOutput, "pdbxyz", Init, "", err, "Run")
	}
	caMap, err := CAMap(atoms, S.Serials())
	if err != nil {
		return "", errDecorate(err, "Run")
	}
	restraints := Restraints(G, caMap, R.force, R.lower, G.Cutoff)
	if err := R.writeKey(base+".key", restraints); err != nil {
		return "", errDecorate(err, "Run")
	}
	R.log.Info("tinker input ready", zap.Int("atoms", len(atoms)), zap.Int("restraints", len(restraints)))

	status(Structures)
	var outputs []string
	if par == Local && models > 1 && R.workers > 1 {
		outputs, err = R.distgeomLocal(ctx, dir, ref, models)
	} else {
		outputs, err = R.distgeom(ctx, dir, BaseName, ref, models)
	}
	if err != nil {
		return "", errDecorate(err, "Run")
	}

	status(Selection)
	best, score, err := R.selectBest(G, caMap, outputs)
	if err != nil {
		return "", errDecorate(err, "Run")
	}
	R.log.Info("best structure chosen", zap.String("file", filepath.Base(best)), zap.Float64("score", score))

	status(Conversion)
	ret, err := R.convert(ctx, dir, best)
	if err != nil {
		return "", errDecorate(err, "Run")
	}
	status(Done)
	return ret, nil
}

func (R *Runner) writeKey(name string, restraints []Restraint) error {
	f, err := os.Create(name)
	if err != nil {
		return newError(ErrInput, "", Init, "writing key file", err, "writeKey")
	}
	if err := WriteKey(f, R.param, restraints); err != nil {
		f.Close()
		return newError(ErrInput, "", Init, "writing key file", err, "writeKey")
	}
	if err := f.Close(); err != nil {
		return newError(ErrInput, "", Init, "writing key file", err, "writeKey")
	}
	return nil
}

// outputName returns the name of the n-th distgeom structure of base.
func outputName(base string, n int) string {
	return fmt.Sprintf("%s.%03d", base, n)
}

// distgeom runs distgeom on name.xyz in dir and returns the paths of the
// structures it writes.
func (R *Runner) distgeom(ctx context.Context, dir, name string, ref Refinement, models int) ([]string, error) {
	err := R.run(ctx, dir, Structures, "distgeom", name+".xyz", strconv.Itoa(models), "Y", "N", ref.anneal())
	if err != nil {
		return nil, errDecorate(err, "distgeom")
	}
	ret := make([]string, models)
	for i := range ret {
		ret[i] = filepath.Join(dir, outputName(name, i+1))
		if _, err := os.Stat(ret[i]); err != nil {
			return nil, newError(ErrNoOutput, "distgeom", Structures, "", err, "distgeom")
		}
	}
	return ret, nil
}

// distgeomLocal splits the structures among the runner's workers. Worker k
// uses its own copy of the input, named BaseName_wk.
func (R *Runner) distgeomLocal(ctx context.Context, dir string, ref Refinement, models int) ([]string, error) {
	workers := min(R.workers, models)
	per := make([]int, workers)
	for i := 0; i < models; i++ {
		per[i%workers]++
	}
	results := make([][]string, workers)
	g, gctx := errgroup.WithContext(ctx)
	for k := 0; k < workers; k++ {
		name := fmt.Sprintf("%s_w%d", BaseName, k)
		for _, ext := range []string{".xyz", ".key"} {
			if err := copyFile(filepath.Join(dir, BaseName+ext), filepath.Join(dir, name+ext)); err != nil {
				return nil, newError(ErrInput, "", Structures, "preparing worker input", err, "distgeomLocal")
			}
		}
		g.Go(func() error {
			out, err := R.distgeom(gctx, dir, name, ref, per[k])
			results[k] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errDecorate(err, "distgeomLocal")
	}
	var ret []string
	for _, r := range results {
		ret = append(ret, r...)
	}
	R.log.Debug("parallel distgeom finished", zap.Int("workers", workers), zap.Int("structures", len(ret)))
	return ret, nil
}

// selectBest returns the output keeping the largest fraction of contacts.
// Ties go to the earliest file.
func (R *Runner) selectBest(G *rig.Graph, caMap map[int]int, outputs []string) (string, float64, error) {
	best, bestScore := "", -1.0
	for _, o := range outputs {
		atoms, err := ReadXYZFile(o)
		if err != nil {
			return "", 0, errDecorate(err, "selectBest")
		}
		s := Score(G, caMap, atoms, G.Cutoff)
		R.log.Debug("structure scored", zap.String("file", filepath.Base(o)), zap.Float64("score", s))
		if s > bestScore {
			best, bestScore = o, s
		}
	}
	if best == "" {
		return "", 0, newError(ErrNoOutput, "distgeom", Selection, "no structures to choose from", nil, "selectBest")
	}
	return best, bestScore, nil
}

// convert copies best to RefinedName.xyz, with the key file, and converts
// it to PDB.
func (R *Runner) convert(ctx context.Context, dir, best string) (string, error) {
	name := filepath.Join(dir, RefinedName)
	if err := copyFile(best, name+".xyz"); err != nil {
		return "", newError(ErrNoOutput, "", Conversion, "", err, "convert")
	}
	if err := copyFile(filepath.Join(dir, BaseName+".key"), name+".key"); err != nil {
		return "", newError(ErrNoOutput, "", Conversion, "", err, "convert")
	}
	if err := R.run(ctx, dir, Conversion, "xyzpdb", name+".xyz", R.param); err != nil {
		return "", errDecorate(err, "convert")
	}
	if _, err := os.Stat(name + ".pdb"); err != nil {
		return "", newError(ErrNoOutput, "xyzpdb", Conversion, "", err, "convert")
	}
	return name + ".pdb", nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
