/*
 * ensemble.go, part of cmview.
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
)

// ErrEmptyEnsemble is returned when averaging zero graphs.
var ErrEmptyEnsemble = errors.New("rig: empty ensemble")

// AverageGraph returns the average of the graphs of an ensemble, usually
// the models of an NMR file. The weight of each contact is the fraction of
// graphs where it is present. The members must be of the same chain.
func AverageGraph(graphs []*Graph) (*Graph, error) {
	if len(graphs) == 0 {
		return nil, ErrEmptyEnsemble
	}
	first := graphs[0]
	A := NewGraph(first.ContactType, first.Cutoff)
	A.PdbCode = first.PdbCode
	A.ChainCode = first.ChainCode
	A.TargetNum = first.TargetNum
	A.FullLength = first.FullLength
	counts := make(map[Contact]int)
	for n, G := range graphs {
		if G.ChainCode != first.ChainCode {
			return nil, fmt.Errorf("rig: ensemble member %d is chain %q, expected %q", n, G.ChainCode, first.ChainCode)
		}
		for k, v := range G.Sequence {
			A.AddResidue(k, v)
		}
		for _, c := range G.Contacts() {
			counts[c]++
		}
	}
	total := float64(len(graphs))
	for c, n := range counts {
		A.AddContact(c.I, c.J, float64(n)/total)
	}
	A.SetWeighted(true)
	return A, nil
}
