/*
 * adaptor.go, part of cmview.
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

package pymol

import (
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cmview/cmview/rig"
)

// TriangleColors is the palette triangles are coloured from.
var TriangleColors = []string{"blue", "red", "yellow", "magenta", "cyan", "tv_blue", "tv_green", "salmon", "warmpink"}

// TriangleAlpha is the opacity given to neighbourhood triangles.
const TriangleAlpha = 0.7

// Adaptor sends contact map selections to one PyMol session, as objects
// named after the loaded structure.
type Adaptor struct {
	w        io.Writer
	object   string
	chain    string
	fileName string
	script   string
	log      *zap.Logger
	err      error
}

// AdaptorOption configures an Adaptor.
type AdaptorOption func(*Adaptor)

// WithScript uses the helper script at path instead of writing the
// embedded one next to the structure file.
func WithScript(path string) AdaptorOption {
	return func(A *Adaptor) { A.script = path }
}

// WithLogger logs every command sent at debug level.
func WithLogger(l *zap.Logger) AdaptorOption {
	return func(A *Adaptor) { A.log = l }
}

// NewAdaptor loads fileName into PyMol as the object pdbCode+chainCode,
// sets up the display and runs the helper script. w is usually a
// ServerWriter.
func NewAdaptor(w io.Writer, pdbCode, chainCode, fileName string, opts ...AdaptorOption) (*Adaptor, error) {
	A := &Adaptor{
		w:        w,
		object:   pdbCode + chainCode,
		chain:    chainCode,
		fileName: fileName,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(A)
	}
	if A.script == "" {
		p, err := WriteScript(filepath.Dir(fileName))
		if err != nil {
			return nil, errDecorate(err, "NewAdaptor")
		}
		A.script = p
	}
	A.send("load %s, %s", fileName, A.object)
	A.send("hide lines")
	A.send("show cartoon")
	A.send("set dash_gap, 0")
	A.send("set dash_width, 2.5")
	A.send("run %s", A.script)
	if A.err != nil {
		return nil, errDecorate(A.err, "NewAdaptor")
	}
	return A, nil
}

// Object returns the name of the PyMol object holding the structure.
func (A *Adaptor) Object() string {
	return A.object
}

// Err returns the first error found while sending commands.
func (A *Adaptor) Err() error {
	return A.err
}

func (A *Adaptor) send(format string, args ...any) {
	if A.err != nil {
		return
	}
	cmd := fmt.Sprintf(format, args...)
	A.log.Debug("pymol command", zap.String("cmd", cmd))
	if _, err := io.WriteString(A.w, cmd+"\n"); err != nil {
		A.err = err
	}
}

func (A *Adaptor) residue(resi int) string {
	return fmt.Sprintf("%s and chain %s and resi %d and name ca", A.object, A.chain, resi)
}

func (A *Adaptor) selectResidues(name string, residues []int) {
	s := make([]string, len(residues))
	for i, r := range residues {
		s[i] = strconv.Itoa(r)
	}
	A.send("select %s, %s and chain %s and resi %s", name, A.object, A.chain, strings.Join(s, "+"))
}

// EdgeSelection shows each contact as a distance between the CA atoms of
// its residues, grouped in the object <obj>Sel<serial>, and selects the
// residues involved as <obj>Sel<serial>Nodes.
func (A *Adaptor) EdgeSelection(serial int, contacts rig.ContactList) error {
	if A.err != nil {
		return A.err
	}
	if len(contacts) == 0 {
		return newError(ErrEmptySelection, "", "no contacts selected", nil, "EdgeSelection")
	}
	sel := fmt.Sprintf("%sSel%d", A.object, serial)
	for _, c := range contacts {
		A.send("distance %s, %s, %s", sel, A.residue(c.I), A.residue(c.J))
	}
	A.send("cmd.hide('labels')")
	A.selectResidues(sel+"Nodes", contacts.Residues())
	return errDecorate(A.err, "EdgeSelection")
}

// triangleColor picks the colour of triangle t (counting from 1). The
// choice is pseudo-random but repeatable.
func triangleColor(t int) string {
	rng := rand.New(rand.NewPCG(uint64(t/2), 0))
	return TriangleColors[(rng.IntN(t)*23)%len(TriangleColors)]
}

// ShowTriangles draws one triangle per common neighbour k of the edge
// (i, j) in nbh, named <obj>Nbh<serial>Tri<t>, and selects i, j and the
// neighbours as <obj>Nbh<serial>Nodes.
func (A *Adaptor) ShowTriangles(nbh rig.EdgeNbh, serial int) error {
	if A.err != nil {
		return A.err
	}
	if nbh.Len() == 0 {
		return newError(ErrEmptySelection, "", fmt.Sprintf("residues %d and %d have no common neighbours", nbh.I, nbh.J), nil, "ShowTriangles")
	}
	residues := []int{nbh.I, nbh.J}
	for t, k := range nbh.Common {
		A.send("triangle('%sNbh%dTri%d', %d, %d, %d, '%s', %g)", A.object, serial, t+1, nbh.I, nbh.J, k, triangleColor(t+1), TriangleAlpha)
		residues = append(residues, k)
	}
	A.selectResidues(fmt.Sprintf("%sNbh%dNodes", A.object, serial), residues)
	return errDecorate(A.err, "ShowTriangles")
}
