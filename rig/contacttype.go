/*
 * contacttype.go, part of cmview.
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

package rig

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cmview/cmview/structure"
)

// ErrContactType is returned for contact type names that cannot be parsed.
var ErrContactType = errors.New("unknown contact type")

type selKind int

const (
	selAtom selKind = iota
	selCB
	selCentroid
	selAll
	selBB
	selSC
)

// selector picks the points of a residue that take part in a contact.
type selector struct {
	kind selKind
	atom string
	name string //as given by the user, for String
}

func parseSelector(s string) (selector, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	switch up {
	case "CA", "C", "N", "O":
		return selector{kind: selAtom, atom: up, name: s}, nil
	case "CB":
		return selector{kind: selCB, name: s}, nil
	case "CG":
		return selector{kind: selCentroid, name: s}, nil
	case "ALL":
		return selector{kind: selAll, name: s}, nil
	case "BB":
		return selector{kind: selBB, name: s}, nil
	case "SC":
		return selector{kind: selSC, name: s}, nil
	}
	return selector{}, fmt.Errorf("%w: %q", ErrContactType, s)
}

func positions(atoms []*structure.Atom) []r3.Vec {
	ret := make([]r3.Vec, len(atoms))
	for i, a := range atoms {
		ret[i] = a.Pos
	}
	return ret
}

// points returns the positions selected for r. It can be empty, in which
// case the residue takes no part in contacts of this type.
func (s selector) points(r *structure.Residue) []r3.Vec {
	switch s.kind {
	case selAtom:
		if a := r.Atom(s.atom); a != nil {
			return []r3.Vec{a.Pos}
		}
	case selCB:
		if a := r.CB(); a != nil {
			return []r3.Vec{a.Pos}
		}
	case selCentroid:
		if c, ok := r.SideChainCentroid(); ok {
			return []r3.Vec{c}
		}
	case selAll:
		return positions(r.Atoms)
	case selBB:
		return positions(r.Backbone())
	case selSC:
		return positions(r.SideChain())
	}
	return nil
}

// ContactType says which atoms of two residues are compared to decide
// whether they are in contact. Single-atom types (Ca, Cb, C, N, O), the side
// chain centroid (Cg), atom sets (ALL, BB, SC) and crossed types such as
// BB/SC are supported.
type ContactType struct {
	i, j    selector
	crossed bool
}

// ParseContactType parses a contact type name. Names are case-insensitive.
func ParseContactType(name string) (ContactType, error) {
	parts := strings.Split(name, "/")
	if len(parts) > 2 {
		return ContactType{}, fmt.Errorf("%w: %q", ErrContactType, name)
	}
	i, err := parseSelector(parts[0])
	if err != nil {
		return ContactType{}, err
	}
	if len(parts) == 1 {
		return ContactType{i: i, j: i}, nil
	}
	j, err := parseSelector(parts[1])
	if err != nil {
		return ContactType{}, err
	}
	return ContactType{i: i, j: j, crossed: i.kind != j.kind || i.atom != j.atom}, nil
}

// MustParseContactType is like ParseContactType but panics on error. It is
// meant for constants in programs and tests.
func MustParseContactType(name string) ContactType {
	ct, err := ParseContactType(name)
	if err != nil {
		panic(err)
	}
	return ct
}

func (C ContactType) String() string {
	if C.i.name == "" {
		return ""
	}
	if C.crossed {
		return C.i.name + "/" + C.j.name
	}
	return C.i.name
}

// IsCrossed reports whether the type compares two different atom selections.
func (C ContactType) IsCrossed() bool {
	return C.crossed
}

// IsCA reports whether the type compares alpha carbons only.
func (C ContactType) IsCA() bool {
	return !C.crossed && C.i.kind == selAtom && C.i.atom == "CA"
}

func minDist2(a, b []r3.Vec) float64 {
	min := -1.0
	for _, p := range a {
		for _, q := range b {
			d := r3.Norm2(r3.Sub(p, q))
			if min < 0 || d < min {
				min = d
			}
		}
	}
	return min
}

// inContact reports whether residues a and b are within cutoff angstroms
// under this contact type. Crossed types are checked both ways, so the
// relation stays symmetric.
func (C ContactType) inContact(a, b *structure.Residue, cutoff float64) bool {
	c2 := cutoff * cutoff
	d := minDist2(C.i.points(a), C.j.points(b))
	if d >= 0 && d <= c2 {
		return true
	}
	if !C.crossed {
		return false
	}
	d = minDist2(C.j.points(a), C.i.points(b))
	return d >= 0 && d <= c2
}
