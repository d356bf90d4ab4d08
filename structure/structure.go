/*
 * structure.go, part of cmview.
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

import "sort"

// NoPdbCode is the PDB code of structures whose file carries none.
const NoPdbCode = ""

// Structure is one chain of one model of a PDB file.
type Structure struct {
	PdbCode   string
	TargetNum int //CASP target number, 0 if none
	ChainCode string
	Model     int
	Residues  []*Residue
	SeqRes    string //one-letter SEQRES sequence, empty if the file has none
	Warnings  []string
	bySerial  map[int]*Residue
}

// Residue returns the residue with the given serial, or nil.
func (S *Structure) Residue(serial int) *Residue {
	return S.bySerial[serial]
}

// Len returns the number of observed residues.
func (S *Structure) Len() int {
	return len(S.Residues)
}

// Serials returns the residue serials in file order.
func (S *Structure) Serials() []int {
	ret := make([]int, len(S.Residues))
	for i, r := range S.Residues {
		ret[i] = r.Serial
	}
	return ret
}

// Sequence returns the one-letter sequence of the observed residues.
func (S *Structure) Sequence() string {
	b := make([]byte, len(S.Residues))
	for i, r := range S.Residues {
		b[i] = r.One
	}
	return string(b)
}

// FullLength returns the length of the chain: the SEQRES length if there is
// one, otherwise the largest residue serial.
func (S *Structure) FullLength() int {
	if S.SeqRes != "" {
		return len(S.SeqRes)
	}
	max := 0
	for _, r := range S.Residues {
		if r.Serial > max {
			max = r.Serial
		}
	}
	return max
}

// Unobserved returns how many SEQRES residues have no coordinates.
func (S *Structure) Unobserved() int {
	if S.SeqRes == "" {
		return 0
	}
	n := len(S.SeqRes) - len(S.Residues)
	if n < 0 {
		return 0
	}
	return n
}

// HasSecondaryStructure reports whether any residue is assigned a state
// other than coil.
func (S *Structure) HasSecondaryStructure() bool {
	for _, r := range S.Residues {
		if r.SS != Coil {
			return true
		}
	}
	return false
}

// SecondaryStructure returns the per-residue secondary structure string.
func (S *Structure) SecondaryStructure() string {
	b := make([]byte, len(S.Residues))
	for i, r := range S.Residues {
		b[i] = r.SS.String()[0]
	}
	return string(b)
}

func (S *Structure) add(r *Residue) {
	S.Residues = append(S.Residues, r)
	S.bySerial[r.Serial] = r
}

// sortResidues keeps residues ordered by serial. PDB files are almost always
// in order already.
func (S *Structure) sortResidues() {
	sort.SliceStable(S.Residues, func(i, j int) bool { return S.Residues[i].Serial < S.Residues[j].Serial })
}
