/*
 * testpdb.go, part of cmview.
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

// Package testpdb builds small PDB files for tests. The files are generated
// with the same column layout the structure package reads, so tests do not
// depend on fixtures whose spacing can be damaged by an editor.
package testpdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Builder accumulates PDB records.
type Builder struct {
	b      strings.Builder
	serial int
}

// New starts a PDB file. If code is not empty a HEADER record carrying it
// is written.
func New(code string) *Builder {
	B := new(Builder)
	if code != "" {
		fmt.Fprintf(&B.b, "%-10s%-40s%-9s   %-4s\n", "HEADER", "TEST PROTEIN", "01-JAN-26", code)
	}
	return B
}

// Target writes a CASP TARGET line.
func (B *Builder) Target(n int) *Builder {
	fmt.Fprintf(&B.b, "TARGET T%04d\n", n)
	return B
}

// SeqRes writes SEQRES records for chain.
func (B *Builder) SeqRes(chain string, names []string) *Builder {
	for ser, i := 1, 0; i < len(names); ser, i = ser+1, i+13 {
		end := i + 13
		if end > len(names) {
			end = len(names)
		}
		fmt.Fprintf(&B.b, "SEQRES %3d %1s %4d  %s\n", ser, chain, len(names), strings.Join(names[i:end], " "))
	}
	return B
}

// Helix writes a HELIX record from start to end. The residue names are
// written as ALA, the reader only looks at chain and serials.
func (B *Builder) Helix(chain string, start, end int) *Builder {
	fmt.Fprintf(&B.b, "HELIX  %3d %3d %3s %1s %4d%1s %3s %1s %4d%1s\n", 1, 1, "ALA", chain, start, " ", "ALA", chain, end, " ")
	return B
}

// Sheet writes a SHEET record from start to end.
func (B *Builder) Sheet(chain string, start, end int) *Builder {
	fmt.Fprintf(&B.b, "SHEET  %3d %3s%2d %3s %1s%4d%1s %3s %1s%4d%1s\n", 1, "A", 1, "ALA", chain, start, " ", "ALA", chain, end, " ")
	return B
}

// Model opens a MODEL record.
func (B *Builder) Model(n int) *Builder {
	fmt.Fprintf(&B.b, "MODEL     %4d\n", n)
	return B
}

// EndModel closes a MODEL record.
func (B *Builder) EndModel() *Builder {
	B.b.WriteString("ENDMDL\n")
	return B
}

// Atom writes one ATOM (or HETATM) record.
func (B *Builder) Atom(het bool, name string, alt byte, resName, chain string, resSerial int, x, y, z float64) *Builder {
	B.serial++
	rec := "ATOM"
	if het {
		rec = "HETATM"
	}
	if alt == 0 {
		alt = ' '
	}
	aname := name
	if len(name) < 4 {
		aname = " " + name
	}
	elem := name[:1]
	fmt.Fprintf(&B.b, "%-6s%5d %-4s%c%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
		rec, B.serial, aname, alt, resName, chain, resSerial, " ", x, y, z, 1.0, 20.0, elem)
	return B
}

// Ter writes a TER record.
func (B *Builder) Ter() *Builder {
	B.b.WriteString("TER\n")
	return B
}

// Linear writes a chain of residues laid out along the x axis, spacing
// angstroms apart, starting at serial first. Every residue gets N, CA, C
// and O atoms, and a CB unless it is a glycine. The CB sits 1.5 angstroms
// above its CA, so CA-CA and CB-CB distances are both spacing*|i-j|.
func (B *Builder) Linear(chain string, first int, names []string, spacing, scale float64) *Builder {
	for i, name := range names {
		x := float64(i) * spacing * scale
		ser := first + i
		B.Atom(false, "N", 0, name, chain, ser, x-1.0, -0.5, 0)
		B.Atom(false, "CA", 0, name, chain, ser, x, 0, 0)
		B.Atom(false, "C", 0, name, chain, ser, x+1.0, -0.5, 0)
		B.Atom(false, "O", 0, name, chain, ser, x+1.0, -1.5, 0)
		if name != "GLY" {
			B.Atom(false, "CB", 0, name, chain, ser, x, 1.5, 0)
		}
	}
	return B
}

// String returns the file content, terminated with END.
func (B *Builder) String() string {
	return B.b.String() + "END\n"
}

// WriteFile writes the file into dir and returns its path.
func (B *Builder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(B.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// Names returns n residue names cycling through a few standard amino
// acids, with a glycine at every fourth position.
func Names(n int) []string {
	cycle := []string{"ALA", "LEU", "SER", "GLY", "VAL", "LYS", "GLU", "GLY"}
	ret := make([]string, n)
	for i := range ret {
		ret[i] = cycle[i%len(cycle)]
	}
	return ret
}
