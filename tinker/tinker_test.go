/*
 * tinker_test.go, part of cmview.
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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cmview/cmview/internal/faketinker"
	"github.com/cmview/cmview/internal/testpdb"
	"github.com/cmview/cmview/model"
	"github.com/cmview/cmview/rig"
	"github.com/cmview/cmview/structure"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func loadedModel(t *testing.T) *model.PdbFileModel {
	t.Helper()
	B := testpdb.New("1ABC")
	B.Linear("A", 1, testpdb.Names(6), 3.8, 1).Ter()
	file := B.WriteFile(t, t.TempDir(), "1abc.pdb")
	M, err := model.NewPdbFileModel(file, "Ca", 8, 0, 0, model.WithTempDir(t.TempDir()), model.WithRegistry(model.NewRegistry()))
	require.NoError(t, err)
	require.NoError(t, M.Load("A", 1))
	t.Cleanup(func() { M.Close() })
	return M
}

func TestReadXYZ(t *testing.T) {
	in := `     3  test
     1  N      -1.000000   -0.500000    0.000000     1     2
     2  CA      0.000000    0.000000    0.000000     2     1     3
     3  C       1.000000   -0.500000    0.000000     3     2
`
	atoms, err := ReadXYZ(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, atoms, 3)
	assert.Equal(t, "CA", atoms[1].Name)
	assert.Equal(t, 2, atoms[1].Index)
	assert.InDelta(t, -0.5, atoms[2].Pos.Y, 1e-9)

	_, err = ReadXYZ(strings.NewReader("     4  test\n     1  N  0 0 0 1\n"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = ReadXYZ(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrFormat)

	m, err := CAMap(atoms, []int{7})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{7: 2}, m)
	_, err = CAMap(atoms, []int{7, 8})
	assert.ErrorIs(t, err, ErrFormat)
}

func TestKeyAndScore(t *testing.T) {
	G := rig.NewGraph(rig.MustParseContactType("Ca"), 8)
	for i := 1; i <= 3; i++ {
		G.AddResidue(i, 'A')
	}
	G.AddContact(1, 2, 1)
	G.AddContact(1, 3, 1)
	caMap := map[int]int{1: 2, 2: 7, 3: 12}
	R := Restraints(G, caMap, 100, 3, 8)
	require.Len(t, R, 2)
	var sb strings.Builder
	require.NoError(t, WriteKey(&sb, "amber99", R))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Equal(t, "parameters amber99", lines[0])
	assert.Equal(t, []string{"restrain-distance", "2", "12", "100.00", "3.000", "8.000"}, strings.Fields(lines[3]))

	atoms := []XYZAtom{{Index: 2}, {Index: 7}, {Index: 12}}
	atoms[1].Pos.X = 5
	atoms[2].Pos.X = 10
	assert.InDelta(t, 0.5, Score(G, caMap, atoms, 8), 1e-9)
	atoms[2].Pos.X = 8
	assert.InDelta(t, 1.0, Score(G, caMap, atoms, 8), 1e-9)
}

func TestRunner(t *testing.T) {
	M := loadedModel(t)
	bin := faketinker.Install(t, faketinker.Distgeom)
	dir := t.TempDir()
	var states []State
	R := NewRunner(WithBinDir(bin), WithParam("oplsaa"))
	out, err := R.Run(context.Background(), dir, M, None, SimulatedAnnealing, 3, func(s State) { states = append(states, s) })
	require.NoError(t, err)
	assert.Equal(t, []State{Init, Structures, Selection, Conversion, Done}, states)
	assert.Equal(t, filepath.Join(dir, RefinedName+".pdb"), out)

	args, err := os.ReadFile(filepath.Join(dir, "distgeom.args"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, BaseName+".xyz"), "3", "Y", "N", "Y"}, strings.Fields(string(args)))

	key, err := os.ReadFile(filepath.Join(dir, BaseName+".key"))
	require.NoError(t, err)
	assert.Contains(t, string(key), "parameters oplsaa")
	assert.Equal(t, 9, strings.Count(string(key), "restrain-distance"))

	// The first structure is the unscaled one.
	S, err := structure.ReadFile(out, "A", 1)
	require.NoError(t, err)
	require.Equal(t, 6, S.Len())
	for i, r := range S.Residues {
		assert.InDelta(t, M.Structure().Residues[i].CA().Pos.X, r.CA().Pos.X, 1e-3)
	}
}

func TestRunnerRelativeDir(t *testing.T) {
	M := loadedModel(t)
	bin := faketinker.Install(t, faketinker.Distgeom)
	root := t.TempDir()
	t.Chdir(root)
	require.NoError(t, os.Mkdir("run", 0o755))
	out, err := NewRunner(WithBinDir(bin)).Run(context.Background(), "run", M, None, Minimization, 2, nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(out), out)
	_, err = os.Stat(filepath.Join(root, "run", RefinedName+".pdb"))
	assert.NoError(t, err)
}

func TestRunnerLocal(t *testing.T) {
	M := loadedModel(t)
	dir := t.TempDir()
	R := NewRunner(WithBinDir(faketinker.Install(t, faketinker.Distgeom)), WithWorkers(2))
	out, err := R.Run(context.Background(), dir, M, Local, Minimization, 3, nil)
	require.NoError(t, err)
	for _, f := range []string{"cmview_w0.001", "cmview_w0.002", "cmview_w1.001"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
	assert.NoFileExists(t, filepath.Join(dir, "cmview_w1.002"))
	refined, err := ReadXYZFile(filepath.Join(dir, RefinedName+".xyz"))
	require.NoError(t, err)
	first, err := ReadXYZFile(filepath.Join(dir, "cmview_w0.001"))
	require.NoError(t, err)
	assert.Equal(t, first, refined, "ties should go to the first structure")
	assert.FileExists(t, out)
}

func TestRunnerErrors(t *testing.T) {
	M := loadedModel(t)
	R := NewRunner(WithBinDir(faketinker.Install(t, faketinker.FailingDistgeom)))
	_, err := R.Run(context.Background(), t.TempDir(), M, None, Minimization, 2, nil)
	require.ErrorIs(t, err, ErrProgram)
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "distgeom", terr.Program())
	assert.Equal(t, Structures, terr.Step())
	assert.Contains(t, err.Error(), "too many violated restraints")

	_, err = R.Run(context.Background(), t.TempDir(), M, None, Minimization, 0, nil)
	assert.ErrorIs(t, err, ErrInput)

	R = NewRunner(WithBinDir(t.TempDir()))
	_, err = R.Run(context.Background(), t.TempDir(), M, None, Minimization, 1, nil)
	require.ErrorIs(t, err, ErrProgram)
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "pdbxyz", terr.Program())
}

type testReporter struct {
	mu       sync.Mutex
	states   []State
	maxFiles int
	result   []byte
	err      error
	started  chan struct{}
	once     sync.Once
}

func newTestReporter() *testReporter {
	return &testReporter{started: make(chan struct{})}
}

func (T *testReporter) SendStatus(s State) {
	T.mu.Lock()
	T.states = append(T.states, s)
	T.mu.Unlock()
	if s == Structures {
		T.once.Do(func() { close(T.started) })
	}
}

func (T *testReporter) FilesDone(n int) {
	T.mu.Lock()
	defer T.mu.Unlock()
	T.maxFiles = max(T.maxFiles, n)
}

func (T *testReporter) ReturnResult(pdbFile string) {
	b, _ := os.ReadFile(pdbFile)
	T.mu.Lock()
	defer T.mu.Unlock()
	T.result = b
}

func (T *testReporter) Failed(err error) {
	T.mu.Lock()
	defer T.mu.Unlock()
	T.err = err
}

func TestRunAction(t *testing.T) {
	M := loadedModel(t)
	root := t.TempDir()
	rep := newTestReporter()
	A, err := NewRunAction(context.Background(), rep, M, None, Minimization, 4,
		WithRunner(NewRunner(WithBinDir(faketinker.Install(t, faketinker.Distgeom)))), WithTempRoot(root))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(A.Dir()), "tinker"))
	_, err = A.Wait()
	require.NoError(t, err)

	assert.Equal(t, []State{Init, Structures, Selection, Conversion, Done}, rep.states)
	assert.Equal(t, 4, rep.maxFiles)
	assert.Contains(t, string(rep.result), "ATOM")
	assert.NoError(t, rep.err)
	assert.NoDirExists(t, A.Dir())
	A.Cancel()
}

func TestRunActionKeepFiles(t *testing.T) {
	M := loadedModel(t)
	rep := newTestReporter()
	A, err := NewRunAction(context.Background(), rep, M, Local, Minimization, 2,
		WithRunner(NewRunner(WithBinDir(faketinker.Install(t, faketinker.Distgeom)), WithWorkers(2))), WithTempRoot(t.TempDir()), KeepFiles(true))
	require.NoError(t, err)
	out, err := A.Wait()
	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.Equal(t, A.Dir(), filepath.Dir(out))
}

func TestRunActionCancel(t *testing.T) {
	M := loadedModel(t)
	rep := newTestReporter()
	A, err := NewRunAction(context.Background(), rep, M, None, Minimization, 2,
		WithRunner(NewRunner(WithBinDir(faketinker.Install(t, faketinker.SlowDistgeom)))), WithTempRoot(t.TempDir()))
	require.NoError(t, err)
	select {
	case <-rep.started:
	case <-time.After(10 * time.Second):
		t.Fatal("distgeom never started")
	}
	start := time.Now()
	A.Cancel()
	A.Cancel()
	_, err = A.Wait()
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, rep.err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.NoDirExists(t, A.Dir())
	assert.Nil(t, rep.result)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.001"), nil, 0o644))
	var mu sync.Mutex
	var seen []int
	W, err := NewWatcher(dir, func(n int) {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
	}, nil)
	require.NoError(t, err)
	require.NoError(t, W.Start(context.Background()))
	for _, name := range []string{"x.xyz", "x.002", "x.key", "x.003"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("1\n"), 0o644))
	}
	assert.Eventually(t, func() bool { return W.Count() == 3 }, 5*time.Second, 10*time.Millisecond)
	W.Stop()
	W.Stop()
	<-W.Done()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestWatcherRenames(t *testing.T) {
	dir := t.TempDir()
	W, err := NewWatcher(dir, nil, nil)
	require.NoError(t, err)
	require.NoError(t, W.Start(context.Background()))
	defer W.Stop()
	tmp := filepath.Join(dir, "x.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("1\n"), 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, "x.001")))
	require.NoError(t, os.WriteFile(tmp, []byte("1\n"), 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, "x.002")))
	assert.Eventually(t, func() bool { return W.Count() == 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.Rename(filepath.Join(dir, "x.002"), filepath.Join(dir, "x.bak")))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, W.Count())
}

func TestEnums(t *testing.T) {
	p, err := ParseParallel("Local")
	require.NoError(t, err)
	assert.Equal(t, Local, p)
	_, err = ParseParallel("grid")
	assert.Error(t, err)
	assert.Equal(t, "annealing", SimulatedAnnealing.String())
	assert.Equal(t, "N", Minimization.anneal())
	assert.Equal(t, "selection", Selection.String())
}
