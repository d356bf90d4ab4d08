/*
 * cmplot.go, part of cmview.
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

// Package cmplot draws contact maps with gonum/plot.
package cmplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cmview/cmview/rig"
)

// ErrNoContacts is returned when there is nothing to draw.
var ErrNoContacts = errors.New("cmplot: no contacts to draw")

// Size is the side of the saved figures.
var Size = 6 * vg.Inch

func basicMapPlot(title string, length int) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Residue i"
	p.Y.Label.Text = "Residue j"
	//Constant axes, so maps of the same chain can be compared.
	p.X.Min = 0.5
	p.X.Max = float64(length) + 0.5
	p.Y.Min = 0.5
	p.Y.Max = float64(length) + 0.5
	p.Add(plotter.NewGrid())
	return p
}

// points returns both (i,j) and (j,i) for every contact, and the weight of
// each point.
func points(G *rig.Graph, L rig.ContactList) (plotter.XYs, []float64) {
	xys := make(plotter.XYs, 0, 2*len(L))
	weights := make([]float64, 0, 2*len(L))
	for _, c := range L {
		w, ok := G.Weight(c.I, c.J)
		if !ok {
			w = 1
		}
		xys = append(xys, plotter.XY{X: float64(c.I), Y: float64(c.J)}, plotter.XY{X: float64(c.J), Y: float64(c.I)})
		weights = append(weights, w, w)
	}
	return xys, weights
}

// mapLength is the largest residue serial the map needs to show.
func mapLength(graphs ...*rig.Graph) int {
	l := 0
	for _, G := range graphs {
		l = max(l, G.FullLength)
		for _, n := range G.Nodes() {
			l = max(l, n)
		}
	}
	return l
}

func glyphSize(length int) vg.Length {
	s := Size / vg.Length(2*length+1)
	return vg.Length(math.Max(1, math.Min(4, float64(s))))
}

// ContactMap saves the contact map of G to file. The format is taken
// from the file extension (png, svg, pdf...). Weighted graphs are shaded by
// weight, darker meaning more frequent.
func ContactMap(G *rig.Graph, title, file string) error {
	L := G.Contacts()
	if len(L) == 0 {
		return ErrNoContacts
	}
	length := mapLength(G)
	p := basicMapPlot(title, length)
	xys, weights := points(G, L)
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	base := draw.GlyphStyle{Shape: draw.BoxGlyph{}, Radius: glyphSize(length), Color: color.Black}
	if G.Weighted() {
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			g := base
			r, gr, b := iHVS2RGB(0, 0.85*(1-weights[i]), 0)
			g.Color = color.RGBA{R: r, G: gr, B: b, A: 255}
			return g
		}
	} else {
		s.GlyphStyle = base
	}
	p.Add(s)
	return save(p, file)
}

// CompareMap saves a map with the contacts common to A and B, those only
// in A and those only in B, each in its own colour.
func CompareMap(A, B *rig.Graph, title, file string) error {
	common, onlyA, onlyB := rig.Compare(A, B)
	if len(common)+len(onlyA)+len(onlyB) == 0 {
		return ErrNoContacts
	}
	length := mapLength(A, B)
	p := basicMapPlot(title, length)
	sets := []struct {
		name string
		G    *rig.Graph
		L    rig.ContactList
	}{
		{"common", A, common},
		{"only " + graphName(A, "first"), A, onlyA},
		{"only " + graphName(B, "second"), B, onlyB},
	}
	for key, set := range sets {
		if len(set.L) == 0 {
			continue
		}
		xys, _ := points(set.G, set.L)
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle = draw.GlyphStyle{Shape: draw.BoxGlyph{}, Radius: glyphSize(length), Color: color.Black}
		if key > 0 {
			r, g, b := colors(key-1, 2)
			s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (%d)", set.name, len(set.L)), s)
	}
	p.Legend.Top = true
	return save(p, file)
}

func graphName(G *rig.Graph, def string) string {
	if G.PdbCode == "" {
		return def
	}
	return G.PdbCode + G.ChainCode
}

func save(p *plot.Plot, file string) error {
	if filepath.Ext(file) == "" {
		file += ".png"
	}
	if err := p.Save(Size, Size, file); err != nil {
		return fmt.Errorf("cmplot: saving %s: %w", file, err)
	}
	return nil
}
