/*
 * xyz.go, part of cmview.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cmview/cmview/rig"
)

// XYZAtom is one atom of a Tinker xyz file.
type XYZAtom struct {
	Index int
	Name  string
	Pos   r3.Vec
	Type  int
}

// ReadXYZ reads the atoms of a Tinker xyz file. Connectivity is ignored.
func ReadXYZ(r io.Reader) ([]XYZAtom, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, newError(ErrFormat, "", Selection, "missing header line", sc.Err(), "ReadXYZ")
	}
	head := strings.Fields(sc.Text())
	if len(head) == 0 {
		return nil, newError(ErrFormat, "", Selection, "empty header line", nil, "ReadXYZ")
	}
	n, err := strconv.Atoi(head[0])
	if err != nil {
		return nil, newError(ErrFormat, "", Selection, "atom count", err, "ReadXYZ")
	}
	atoms := make([]XYZAtom, 0, n)
	for sc.Scan() && len(atoms) < n {
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		//Periodic boxes add a line with the cell, which starts with a float.
		if len(atoms) == 0 && strings.Contains(f[0], ".") {
			continue
		}
		if len(f) < 6 {
			return nil, newError(ErrFormat, "", Selection, fmt.Sprintf("atom line %q", sc.Text()), nil, "ReadXYZ")
		}
		a := XYZAtom{Name: f[1]}
		var c [3]float64
		a.Index, err = strconv.Atoi(f[0])
		if err == nil {
			a.Type, err = strconv.Atoi(f[5])
		}
		for i := 0; i < 3 && err == nil; i++ {
			c[i], err = strconv.ParseFloat(f[2+i], 64)
		}
		if err != nil {
			return nil, newError(ErrFormat, "", Selection, fmt.Sprintf("atom line %q", sc.Text()), err, "ReadXYZ")
		}
		a.Pos = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
		atoms = append(atoms, a)
	}
	if err := sc.Err(); err != nil {
		return nil, newError(ErrFormat, "", Selection, "", err, "ReadXYZ")
	}
	if len(atoms) != n {
		return nil, newError(ErrFormat, "", Selection, fmt.Sprintf("%d atoms announced, %d read", n, len(atoms)), nil, "ReadXYZ")
	}
	return atoms, nil
}

// ReadXYZFile reads the Tinker xyz file name.
func ReadXYZFile(name string) ([]XYZAtom, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError(ErrNoOutput, "", Selection, "", err, "ReadXYZFile")
	}
	defer f.Close()
	atoms, err := ReadXYZ(f)
	return atoms, errDecorate(err, "ReadXYZFile")
}

// CAMap maps residue serials to the index (counting from 1) of their CA in
// a Tinker xyz file. pdbxyz keeps residue order, so the n-th CA belongs to
// the n-th residue in serials.
func CAMap(atoms []XYZAtom, serials []int) (map[int]int, error) {
	ret := make(map[int]int, len(serials))
	n := 0
	for _, a := range atoms {
		if !strings.EqualFold(a.Name, "CA") {
			continue
		}
		if n >= len(serials) {
			return nil, newError(ErrFormat, "pdbxyz", Init, fmt.Sprintf("more CA atoms than the %d residues", len(serials)), nil, "CAMap")
		}
		ret[serials[n]] = a.Index
		n++
	}
	if n != len(serials) {
		return nil, newError(ErrFormat, "pdbxyz", Init, fmt.Sprintf("%d CA atoms for %d residues", n, len(serials)), nil, "CAMap")
	}
	return ret, nil
}

// Restraint is a distance restraint between two atoms of the xyz file.
type Restraint struct {
	I, J         int
	Force        float64
	Lower, Upper float64
}

// Restraints turns the contacts of G into CA-CA distance restraints with
// the given force and bounds. Contacts of residues missing from caMap are
// skipped.
func Restraints(G *rig.Graph, caMap map[int]int, force, lower, upper float64) []Restraint {
	contacts := G.Contacts()
	ret := make([]Restraint, 0, len(contacts))
	for _, c := range contacts {
		i, oki := caMap[c.I]
		j, okj := caMap[c.J]
		if !oki || !okj {
			continue
		}
		ret = append(ret, Restraint{I: i, J: j, Force: force, Lower: lower, Upper: upper})
	}
	return ret
}

// WriteKey writes a Tinker keyfile with the force field and the restraints.
func WriteKey(w io.Writer, param string, restraints []Restraint) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "parameters %s\n\n", param)
	for _, r := range restraints {
		fmt.Fprintf(bw, "restrain-distance %6d %6d %10.2f %8.3f %8.3f\n", r.I, r.J, r.Force, r.Lower, r.Upper)
	}
	return bw.Flush()
}

// Score returns the fraction of contacts in G whose CA atoms are at most
// cutoff angstroms apart in atoms. A graph without contacts scores 0.
func Score(G *rig.Graph, caMap map[int]int, atoms []XYZAtom, cutoff float64) float64 {
	byIndex := make(map[int]r3.Vec, len(caMap))
	for _, a := range atoms {
		byIndex[a.Index] = a.Pos
	}
	total, kept := 0, 0
	for _, c := range G.Contacts() {
		pi, oki := byIndex[caMap[c.I]]
		pj, okj := byIndex[caMap[c.J]]
		if !oki || !okj {
			continue
		}
		total++
		if r3.Norm(r3.Sub(pi, pj)) <= cutoff {
			kept++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(kept) / float64(total)
}
