/*
 * cmplot_test.go, part of cmview.
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

package cmplot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmview/cmview/rig"
)

func lineGraph(n int, maxSep int) *rig.Graph {
	G := rig.NewGraph(rig.MustParseContactType("Ca"), 8)
	G.PdbCode = "1abc"
	G.ChainCode = "A"
	G.FullLength = n
	for i := 1; i <= n; i++ {
		G.AddResidue(i, 'A')
	}
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n && j-i <= maxSep; j++ {
			G.AddContact(i, j, 1)
		}
	}
	return G
}

func isPNG(Te *testing.T, name string) {
	Te.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		Te.Errorf("%s is not a PNG file", name)
	}
}

func TestContactMap(Te *testing.T) {
	dir := Te.TempDir()
	G := lineGraph(20, 3)
	if err := ContactMap(G, "1abcA", filepath.Join(dir, "map.png")); err != nil {
		Te.Fatal(err)
	}
	isPNG(Te, filepath.Join(dir, "map.png"))

	G.SetWeighted(true)
	G.AddContact(1, 10, 0.25)
	if err := ContactMap(G, "weighted", filepath.Join(dir, "weighted")); err != nil {
		Te.Fatal(err)
	}
	isPNG(Te, filepath.Join(dir, "weighted.png"))

	if err := ContactMap(lineGraph(5, 0), "empty", filepath.Join(dir, "e.png")); !errors.Is(err, ErrNoContacts) {
		Te.Errorf("expected ErrNoContacts, got %v", err)
	}
}

func TestCompareMap(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "cmp.png")
	A := lineGraph(20, 3)
	B := lineGraph(20, 2)
	B.AddContact(1, 15, 1)
	if err := CompareMap(A, B, "compare", name); err != nil {
		Te.Fatal(err)
	}
	isPNG(Te, name)
}

func TestColors(Te *testing.T) {
	if r, g, b := iHVS2RGB(0, 0, 0); r != 0 || g != 0 || b != 0 {
		Te.Errorf("v=0 should be black, got %d %d %d", r, g, b)
	}
	if r, g, b := iHVS2RGB(0, 1, 1); r != 255 || g != 0 || b != 0 {
		Te.Errorf("h=0 should be red, got %d %d %d", r, g, b)
	}
	r1, g1, b1 := colors(0, 2)
	r2, g2, b2 := colors(1, 2)
	if r1 == r2 && g1 == g2 && b1 == b2 {
		Te.Errorf("series colours should differ")
	}
}
