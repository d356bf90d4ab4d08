/*
 * residue.go, part of cmview.
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
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// SecStruct is the secondary structure state of a residue.
type SecStruct byte

const (
	Coil SecStruct = iota
	Helix
	Strand
	Turn
)

func (S SecStruct) String() string {
	switch S {
	case Helix:
		return "H"
	case Strand:
		return "E"
	case Turn:
		return "T"
	}
	return "C"
}

// Atom is one atom record. Only the first alternate location is kept by the
// reader, so AltLoc is either blank or 'A'.
type Atom struct {
	Serial    int
	Name      string
	AltLoc    byte
	ResName   string
	Chain     string
	ResSerial int
	ICode     byte
	Pos       r3.Vec
	Occupancy float64
	BFactor   float64
	Element   string
	Het       bool
}

// Residue is an amino acid of the loaded chain.
type Residue struct {
	Serial int
	ICode  byte
	Name   string
	One    byte //one-letter code, 'X' if unknown
	SS     SecStruct
	Atoms  []*Atom
}

// Atom returns the atom with the given name, or nil.
func (R *Residue) Atom(name string) *Atom {
	for _, a := range R.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// CA returns the alpha carbon, or nil.
func (R *Residue) CA() *Atom {
	return R.Atom("CA")
}

// CB returns the beta carbon. Glycines have none, their CA is returned instead.
func (R *Residue) CB() *Atom {
	if cb := R.Atom("CB"); cb != nil {
		return cb
	}
	if R.Name == "GLY" {
		return R.CA()
	}
	return nil
}

var backboneNames = map[string]bool{"N": true, "CA": true, "C": true, "O": true, "OXT": true}

// IsBackbone reports whether name is a backbone atom name.
func IsBackbone(name string) bool {
	return backboneNames[name]
}

// Backbone returns the backbone atoms of the residue.
func (R *Residue) Backbone() []*Atom {
	ret := make([]*Atom, 0, 5)
	for _, a := range R.Atoms {
		if backboneNames[a.Name] {
			ret = append(ret, a)
		}
	}
	return ret
}

// SideChain returns the side chain atoms of the residue. Glycine has none.
func (R *Residue) SideChain() []*Atom {
	ret := make([]*Atom, 0, len(R.Atoms))
	for _, a := range R.Atoms {
		if !backboneNames[a.Name] {
			ret = append(ret, a)
		}
	}
	return ret
}

// SideChainCentroid returns the geometric center of the side chain atoms.
// For residues without side chain atoms it returns the CA position, and
// false if there is no CA either.
func (R *Residue) SideChainCentroid() (r3.Vec, bool) {
	sc := R.SideChain()
	if len(sc) == 0 {
		ca := R.CA()
		if ca == nil {
			return r3.Vec{}, false
		}
		return ca.Pos, true
	}
	var c r3.Vec
	for _, a := range sc {
		c = r3.Add(c, a.Pos)
	}
	return r3.Scale(1/float64(len(sc)), c), true
}

//A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
	"MSE": 'M', //selenomethionine, comes as HETATM
}

// OneLetter returns the one-letter code for a residue name, 'X' if unknown.
func OneLetter(name string) byte {
	if o, ok := three2OneLetter[strings.ToUpper(name)]; ok {
		return o
	}
	return 'X'
}

// IsAminoAcid reports whether name is a (standard or MSE) amino acid.
func IsAminoAcid(name string) bool {
	_, ok := three2OneLetter[strings.ToUpper(name)]
	return ok
}
