/*
 * rig_test.go, part of cmview.
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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cmview/cmview/internal/testpdb"
	"github.com/cmview/cmview/structure"
)

func linearStructure(Te *testing.T, n int, scale float64) *structure.Structure {
	Te.Helper()
	B := testpdb.New("1ABC")
	B.Linear("A", 1, testpdb.Names(n), 3.8, scale)
	S, err := structure.ReadFile(B.WriteFile(Te, Te.TempDir(), "lin.pdb"), "A", 1)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestContactTypes(Te *testing.T) {
	for _, name := range []string{"Ca", "cb", "C", "N", "O", "Cg", "ALL", "BB", "SC", "BB/SC", "Ca/Cb"} {
		ct, err := ParseContactType(name)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if ct.String() != name {
			Te.Errorf("%s printed as %s", name, ct.String())
		}
	}
	if !MustParseContactType("BB/SC").IsCrossed() || MustParseContactType("Ca/CA").IsCrossed() {
		Te.Errorf("wrong crossed flag")
	}
	if !MustParseContactType("ca").IsCA() || MustParseContactType("Cb").IsCA() {
		Te.Errorf("wrong IsCA")
	}
	for _, bad := range []string{"XX", "", "Ca/Cb/BB", "Ca/"} {
		if _, err := ParseContactType(bad); !errors.Is(err, ErrContactType) {
			Te.Errorf("%q: expected ErrContactType, got %v", bad, err)
		}
	}
}

func TestFromStructure(Te *testing.T) {
	S := linearStructure(Te, 6, 1)
	cases := []struct {
		ct     string
		cutoff float64
		want   int
	}{
		{"Ca", 8.0, 9},
		{"Ca", 4.0, 5},
		{"Cb", 8.0, 9},
		{"ALL", 8.0, 9},
		{"ALL", 10.0, 12},
		{"BB/SC", 8.0, 9},
	}
	for _, c := range cases {
		G, err := FromStructure(S, MustParseContactType(c.ct), c.cutoff)
		if err != nil {
			Te.Fatal(err)
		}
		if G.EdgeCount() != c.want {
			Te.Errorf("%s at %.1f: %d contacts, expected %d (%v)", c.ct, c.cutoff, G.EdgeCount(), c.want, G.Contacts())
		}
	}
	G, _ := FromStructure(S, MustParseContactType("Ca"), 8)
	if G.PdbCode != "1abc" || G.ChainCode != "A" || G.FullLength != 6 || len(G.Nodes()) != 6 {
		Te.Errorf("graph metadata not copied: %q %q %d", G.PdbCode, G.ChainCode, G.FullLength)
	}
	want := ContactList{{1, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 4}, {3, 5}, {4, 5}, {4, 6}, {5, 6}}
	if d := cmp.Diff(want, G.Contacts()); d != "" {
		Te.Errorf("contacts differ (-want +got):\n%s", d)
	}
	if w, ok := G.Weight(2, 4); !ok || w != 1 {
		Te.Errorf("weight %f %v", w, ok)
	}
	if _, err := FromStructure(S, MustParseContactType("Ca"), 0); err == nil {
		Te.Errorf("a zero cutoff should fail")
	}
}

func TestNeighborhood(Te *testing.T) {
	G, _ := FromStructure(linearStructure(Te, 6, 1), MustParseContactType("Ca"), 8)
	if d := cmp.Diff([]int{1, 3, 4}, G.Neighbors(2)); d != "" {
		Te.Errorf("neighbors of 2 (-want +got):\n%s", d)
	}
	nbh := G.CommonNeighborhood(2, 3)
	if nbh.I != 2 || nbh.J != 3 || nbh.Len() != 2 {
		Te.Fatalf("wrong neighbourhood %+v", nbh)
	}
	if d := cmp.Diff([]int{1, 4}, nbh.Common); d != "" {
		Te.Errorf("common neighbours (-want +got):\n%s", d)
	}
	if G.CommonNeighborhood(1, 6).Len() != 0 {
		Te.Errorf("1 and 6 share no neighbours")
	}
}

func TestFilterBySeqSep(Te *testing.T) {
	G, _ := FromStructure(linearStructure(Te, 6, 1), MustParseContactType("Ca"), 8)
	C := G.Copy()
	if n := C.FilterBySeqSep(2, 0); n != 5 || C.EdgeCount() != 4 {
		Te.Errorf("min filter removed %d, left %d", n, C.EdgeCount())
	}
	if G.EdgeCount() != 9 {
		Te.Errorf("filtering the copy changed the original")
	}
	C = G.Copy()
	if n := C.FilterBySeqSep(0, 1); n != 4 || C.EdgeCount() != 5 {
		Te.Errorf("max filter removed %d, left %d", n, C.EdgeCount())
	}
	if n := G.FilterBySeqSep(0, 0); n != 0 {
		Te.Errorf("disabled filter removed %d", n)
	}
}

func TestAverageGraph(Te *testing.T) {
	ct := MustParseContactType("Ca")
	G1, _ := FromStructure(linearStructure(Te, 6, 1), ct, 8)
	G2, _ := FromStructure(linearStructure(Te, 6, 2), ct, 8)
	A, err := AverageGraph([]*Graph{G1, G2})
	if err != nil {
		Te.Fatal(err)
	}
	if !A.Weighted() || A.EdgeCount() != 9 {
		Te.Fatalf("average has %d contacts, weighted %v", A.EdgeCount(), A.Weighted())
	}
	for _, c := range A.Contacts() {
		w, _ := A.Weight(c.I, c.J)
		want := 1.0
		if c.SeqSep() == 2 {
			want = 0.5
		}
		if math.Abs(w-want) > 1e-9 {
			Te.Errorf("contact %v weight %f, expected %f", c, w, want)
		}
	}
	if _, err := AverageGraph(nil); !errors.Is(err, ErrEmptyEnsemble) {
		Te.Errorf("expected ErrEmptyEnsemble, got %v", err)
	}
	G2.ChainCode = "B"
	if _, err := AverageGraph([]*Graph{G1, G2}); err == nil {
		Te.Errorf("mixing chains should fail")
	}
}

func TestCompare(Te *testing.T) {
	ct := MustParseContactType("Ca")
	G1, _ := FromStructure(linearStructure(Te, 6, 1), ct, 8)
	G2, _ := FromStructure(linearStructure(Te, 6, 1), ct, 4)
	G2.AddContact(1, 6, 1)
	common, only1, only2 := Compare(G1, G2)
	if len(common) != 5 || len(only1) != 4 {
		Te.Errorf("common %v, only in first %v", common, only1)
	}
	if d := cmp.Diff(ContactList{{1, 6}}, only2); d != "" {
		Te.Errorf("only in second (-want +got):\n%s", d)
	}
}

func TestParseContactList(Te *testing.T) {
	L, err := ParseContactList(" 10-3, 4-12,3-10 ")
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(ContactList{{3, 10}, {4, 12}}, L); d != "" {
		Te.Errorf("(-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{3, 10, 4, 12}, L.Residues()); d != "" {
		Te.Errorf("residues (-want +got):\n%s", d)
	}
	for _, bad := range []string{"", "3", "3-3", "a-4", "1-2-3"} {
		if _, err := ParseContactList(bad); err == nil {
			Te.Errorf("%q should not parse", bad)
		}
	}
}
