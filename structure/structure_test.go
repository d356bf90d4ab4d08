/*
 * structure_test.go, part of cmview.
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

package structure

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/cmview/cmview/internal/testpdb"
)

func linear(code string) *testpdb.Builder {
	B := testpdb.New(code)
	B.Helix("A", 2, 4)
	B.Linear("A", 1, testpdb.Names(6), 3.8, 1)
	return B.Ter()
}

func TestLoad(Te *testing.T) {
	name := linear("1ABC").WriteFile(Te, Te.TempDir(), "1abc.pdb")
	S, err := ReadFile(name, "A", 1)
	if err != nil {
		Te.Fatal(err)
	}
	if S.PdbCode != "1abc" {
		Te.Errorf("pdb code %q, expected 1abc", S.PdbCode)
	}
	if S.Len() != 6 {
		Te.Fatalf("%d residues, expected 6", S.Len())
	}
	if seq := S.Sequence(); seq != "ALSGVK" {
		Te.Errorf("sequence %s, expected ALSGVK", seq)
	}
	if ss := S.SecondaryStructure(); ss != "CHHHCC" {
		Te.Errorf("secondary structure %s, expected CHHHCC", ss)
	}
	ca := S.Residue(3).CA()
	if ca == nil || math.Abs(ca.Pos.X-7.6) > 1e-6 {
		Te.Errorf("wrong CA for residue 3: %v", ca)
	}
	gly := S.Residue(4)
	if gly.CB() != gly.CA() {
		Te.Errorf("glycine CB should fall back to CA")
	}
	if len(gly.SideChain()) != 0 || len(gly.Backbone()) != 4 {
		Te.Errorf("glycine has %d side chain and %d backbone atoms", len(gly.SideChain()), len(gly.Backbone()))
	}
	c, ok := S.Residue(1).SideChainCentroid()
	if !ok || math.Abs(c.Y-1.5) > 1e-6 {
		Te.Errorf("wrong side chain centroid %v", c)
	}
	if !S.HasSecondaryStructure() {
		Te.Errorf("HELIX record was not assigned")
	}
}

func TestFirstChain(Te *testing.T) {
	B := testpdb.New("")
	B.Linear("B", 10, testpdb.Names(3), 3.8, 1).Ter()
	B.Linear("C", 1, testpdb.Names(2), 3.8, 1).Ter()
	name := B.WriteFile(Te, Te.TempDir(), "two.pdb")
	F := NewFile(name)
	chains, err := F.ChainCodes()
	if err != nil {
		Te.Fatal(err)
	}
	if strings.Join(chains, "") != "BC" {
		Te.Errorf("chains %v, expected [B C]", chains)
	}
	S, err := F.Load("-", 1)
	if err != nil {
		Te.Fatal(err)
	}
	if S.ChainCode != "B" || S.Len() != 3 || S.Residues[0].Serial != 10 {
		Te.Errorf("loaded chain %s with %d residues", S.ChainCode, S.Len())
	}
	if S.PdbCode != NoPdbCode || S.HasSecondaryStructure() {
		Te.Errorf("unexpected pdb code %q or secondary structure", S.PdbCode)
	}
}

func TestModels(Te *testing.T) {
	B := testpdb.New("2XYZ")
	for m := 1; m <= 3; m++ {
		B.Model(m)
		B.Linear("A", 1, testpdb.Names(4), 3.8, float64(m))
		B.EndModel()
	}
	F := NewFile(B.WriteFile(Te, Te.TempDir(), "nmr.pdb"))
	models, err := F.Models()
	if err != nil {
		Te.Fatal(err)
	}
	if len(models) != 3 || models[2] != 3 {
		Te.Errorf("models %v", models)
	}
	S, err := F.Load("A", 2)
	if err != nil {
		Te.Fatal(err)
	}
	if x := S.Residue(2).CA().Pos.X; math.Abs(x-7.6) > 1e-6 {
		Te.Errorf("model 2 residue 2 CA at x=%f, expected 7.6", x)
	}
	all, err := F.LoadAllModels("A")
	if err != nil {
		Te.Fatal(err)
	}
	if len(all) != 3 {
		Te.Errorf("%d models loaded", len(all))
	}
	if _, err = F.Load("A", 4); !errors.Is(err, ErrNoModel) {
		Te.Errorf("expected ErrNoModel, got %v", err)
	}
	_, err = F.Load("Z", 1)
	if !errors.Is(err, ErrNoChain) {
		Te.Errorf("expected ErrNoChain, got %v", err)
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.FileName() != F.Name() || !perr.Critical() {
		Te.Errorf("error does not carry the file name: %v", err)
	}
}

func TestFiltering(Te *testing.T) {
	B := testpdb.New("3DEF").Target(345)
	B.SeqRes("A", []string{"ALA", "MSE", "GLY", "LEU"})
	B.Atom(false, "CA", 'A', "ALA", "A", 1, 0, 0, 0)
	B.Atom(false, "CA", 'B', "ALA", "A", 1, 0.5, 0, 0)
	B.Atom(true, "CA", 0, "MSE", "A", 2, 3.8, 0, 0)
	B.Atom(false, "CA", 0, "GLY", "A", 3, 7.6, 0, 0)
	B.Atom(false, "H", 0, "GLY", "A", 3, 7.6, 1, 0)
	B.Atom(true, "O", 0, "HOH", "A", 101, 20, 0, 0)
	B.Atom(true, "ZN", 0, "ZN", "A", 102, 25, 0, 0)
	S, err := ReadFile(B.WriteFile(Te, Te.TempDir(), "f.pdb"), "A", 1)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 3 || S.Sequence() != "AMG" {
		Te.Errorf("loaded %d residues, sequence %s", S.Len(), S.Sequence())
	}
	if len(S.Residue(3).Atoms) != 1 {
		Te.Errorf("hydrogens were not removed")
	}
	if S.TargetNum != 345 {
		Te.Errorf("target %d, expected 345", S.TargetNum)
	}
	if S.Unobserved() != 1 || S.FullLength() != 4 {
		Te.Errorf("unobserved %d, full length %d", S.Unobserved(), S.FullLength())
	}
	if len(S.Warnings) != 2 {
		Te.Errorf("expected alternate location and SEQRES warnings, got %v", S.Warnings)
	}
}

func TestCompressed(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "1abc.pdb.gz")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte(linear("1ABC").String()))
	gz.Close()
	f.Close()
	S, err := ReadFile(name, "A", 1)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 6 {
		Te.Errorf("%d residues read from compressed file", S.Len())
	}
}

func TestWritePDB(Te *testing.T) {
	S, err := ReadFile(linear("1ABC").WriteFile(Te, Te.TempDir(), "in.pdb"), "A", 1)
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePDB(&buf, S); err != nil {
		Te.Fatal(err)
	}
	raw, err := readPDB(&buf, "buffer")
	if err != nil {
		Te.Fatal(err)
	}
	S2, err := build(raw, raw.models[0], "A")
	if err != nil {
		Te.Fatal(err)
	}
	if S2.PdbCode != "1abc" || S2.Sequence() != S.Sequence() {
		Te.Errorf("round trip changed the chain: %s %s", S2.PdbCode, S2.Sequence())
	}
	for i, r := range S.Residues {
		a, b := r.CA().Pos, S2.Residues[i].CA().Pos
		if math.Abs(a.X-b.X)+math.Abs(a.Y-b.Y)+math.Abs(a.Z-b.Z) > 1e-3 {
			Te.Errorf("residue %d moved: %v -> %v", r.Serial, a, b)
		}
	}
}

func TestBadFiles(Te *testing.T) {
	dir := Te.TempDir()
	short := filepath.Join(dir, "short.pdb")
	os.WriteFile(short, []byte("ATOM      1  CA  ALA A   1      1.000\n"), 0o644)
	if _, err := ReadFile(short, "A", 1); !errors.Is(err, ErrFormat) {
		Te.Errorf("expected ErrFormat, got %v", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.pdb"), "A", 1); !errors.Is(err, ErrOpen) {
		Te.Errorf("expected ErrOpen, got %v", err)
	}
	empty := filepath.Join(dir, "empty.pdb")
	os.WriteFile(empty, []byte("REMARK nothing here\n"), 0o644)
	if _, err := ReadFile(empty, "A", 1); !errors.Is(err, ErrEmpty) {
		Te.Errorf("expected ErrEmpty, got %v", err)
	}
}
