/*
 * graph.go, part of cmview.
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
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/cmview/cmview/structure"
)

// Contact is an edge of the contact map between residue serials I and J,
// with I < J.
type Contact struct {
	I, J int
}

// NewContact returns the contact between i and j, in canonical order.
func NewContact(i, j int) Contact {
	if i > j {
		i, j = j, i
	}
	return Contact{I: i, J: j}
}

// SeqSep returns the sequence separation of the contact.
func (C Contact) SeqSep() int {
	return C.J - C.I
}

func (C Contact) String() string {
	return fmt.Sprintf("%d-%d", C.I, C.J)
}

// ContactList is a list of contacts. Lists returned by this package are
// sorted by I, then J.
type ContactList []Contact

func (L ContactList) Len() int      { return len(L) }
func (L ContactList) Swap(i, j int) { L[i], L[j] = L[j], L[i] }
func (L ContactList) Less(i, j int) bool {
	if L[i].I != L[j].I {
		return L[i].I < L[j].I
	}
	return L[i].J < L[j].J
}

// Residues returns the residues of the contacts in order: i1, j1, i2, j2...
// Residues in several contacts are repeated.
func (L ContactList) Residues() []int {
	ret := make([]int, 0, 2*len(L))
	for _, c := range L {
		ret = append(ret, c.I, c.J)
	}
	return ret
}

// EdgeNbh is the common neighbourhood of the edge (I, J): the residues in
// contact with both I and J.
type EdgeNbh struct {
	I, J   int
	Common []int //sorted
}

// Len returns the number of common neighbours.
func (E EdgeNbh) Len() int {
	return len(E.Common)
}

// Graph is a residue interaction graph. Node IDs are residue serials, edges
// are contacts. Edges built from a single structure have weight 1, ensemble
// averages carry the fraction of models with the contact.
type Graph struct {
	PdbCode     string
	ChainCode   string
	TargetNum   int
	ContactType ContactType
	Cutoff      float64
	Sequence    map[int]byte //residue serial to one-letter code
	FullLength  int
	weighted    bool
	g           *simple.WeightedUndirectedGraph
}

// NewGraph returns an empty graph.
func NewGraph(ct ContactType, cutoff float64) *Graph {
	return &Graph{
		ContactType: ct,
		Cutoff:      cutoff,
		Sequence:    make(map[int]byte),
		g:           simple.NewWeightedUndirectedGraph(0, 0),
	}
}

// FromStructure builds the graph of S: residues i and j are in contact when
// they are within cutoff angstroms of each other under the contact type ct.
func FromStructure(S *structure.Structure, ct ContactType, cutoff float64) (*Graph, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("rig: cutoff must be positive, got %g", cutoff)
	}
	G := NewGraph(ct, cutoff)
	G.PdbCode = S.PdbCode
	G.ChainCode = S.ChainCode
	G.TargetNum = S.TargetNum
	G.FullLength = S.FullLength()
	for _, r := range S.Residues {
		G.AddResidue(r.Serial, r.One)
	}
	res := S.Residues
	for a := 0; a < len(res); a++ {
		for b := a + 1; b < len(res); b++ {
			if ct.inContact(res[a], res[b], cutoff) {
				G.g.SetWeightedEdge(G.g.NewWeightedEdge(simple.Node(res[a].Serial), simple.Node(res[b].Serial), 1))
			}
		}
	}
	return G, nil
}

// AddResidue adds a node for residue serial, if it is not there already.
func (G *Graph) AddResidue(serial int, one byte) {
	G.Sequence[serial] = one
	if G.g.Node(int64(serial)) == nil {
		G.g.AddNode(simple.Node(serial))
	}
}

// AddContact adds, or reweights, the contact between i and j.
func (G *Graph) AddContact(i, j int, weight float64) error {
	if i == j {
		return fmt.Errorf("rig: residue %d can't be in contact with itself", i)
	}
	G.g.SetWeightedEdge(G.g.NewWeightedEdge(simple.Node(i), simple.Node(j), weight))
	return nil
}

// RemoveContact removes the contact between i and j, if present.
func (G *Graph) RemoveContact(i, j int) {
	G.g.RemoveEdge(int64(i), int64(j))
}

// HasContact reports whether i and j are in contact.
func (G *Graph) HasContact(i, j int) bool {
	return G.g.HasEdgeBetween(int64(i), int64(j))
}

// Weight returns the weight of the contact between i and j.
func (G *Graph) Weight(i, j int) (float64, bool) {
	if i == j || !G.HasContact(i, j) {
		return 0, false
	}
	return G.g.Weight(int64(i), int64(j))
}

// Weighted reports whether the weights carry information, as in ensemble
// graphs.
func (G *Graph) Weighted() bool {
	return G.weighted
}

// SetWeighted marks the graph as weighted or not.
func (G *Graph) SetWeighted(w bool) {
	G.weighted = w
}

// Contacts returns all the contacts, sorted.
func (G *Graph) Contacts() ContactList {
	ret := make(ContactList, 0, G.EdgeCount())
	it := G.g.Edges()
	for it.Next() {
		e := it.Edge()
		ret = append(ret, NewContact(int(e.From().ID()), int(e.To().ID())))
	}
	sort.Sort(ret)
	return ret
}

// EdgeCount returns the number of contacts.
func (G *Graph) EdgeCount() int {
	return G.g.Edges().Len()
}

// Nodes returns the residue serials in the graph, sorted.
func (G *Graph) Nodes() []int {
	ret := make([]int, 0, len(G.Sequence))
	it := G.g.Nodes()
	for it.Next() {
		ret = append(ret, int(it.Node().ID()))
	}
	sort.Ints(ret)
	return ret
}

// Neighbors returns the residues in contact with i, sorted.
func (G *Graph) Neighbors(i int) []int {
	ret := make([]int, 0, 8)
	it := G.g.From(int64(i))
	for it.Next() {
		ret = append(ret, int(it.Node().ID()))
	}
	sort.Ints(ret)
	return ret
}

// CommonNeighborhood returns the residues in contact with both i and j.
// i and j don't need to be in contact themselves.
func (G *Graph) CommonNeighborhood(i, j int) EdgeNbh {
	ret := EdgeNbh{I: i, J: j, Common: make([]int, 0, 4)}
	for _, k := range G.Neighbors(i) {
		if k != j && G.HasContact(j, k) {
			ret.Common = append(ret.Common, k)
		}
	}
	return ret
}

// FilterBySeqSep removes the contacts with sequence separation below min or
// above max. A bound that is 0 or negative is not applied. It returns the
// number of contacts removed.
func (G *Graph) FilterBySeqSep(min, max int) int {
	if min <= 0 && max <= 0 {
		return 0
	}
	removed := 0
	for _, c := range G.Contacts() {
		sep := c.SeqSep()
		if (min > 0 && sep < min) || (max > 0 && sep > max) {
			G.RemoveContact(c.I, c.J)
			removed++
		}
	}
	return removed
}

// Copy returns a deep copy of the graph.
func (G *Graph) Copy() *Graph {
	N := NewGraph(G.ContactType, G.Cutoff)
	N.PdbCode = G.PdbCode
	N.ChainCode = G.ChainCode
	N.TargetNum = G.TargetNum
	N.FullLength = G.FullLength
	N.weighted = G.weighted
	for k, v := range G.Sequence {
		N.AddResidue(k, v)
	}
	it := G.g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		N.g.SetWeightedEdge(N.g.NewWeightedEdge(e.From(), e.To(), e.Weight()))
	}
	return N
}

// Undirected exposes the graph for use with gonum's graph algorithms.
func (G *Graph) Undirected() graph.WeightedUndirected {
	return G.g
}
