/*
 * model.go, part of cmview.
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

package model

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cmview/cmview/rig"
	"github.com/cmview/cmview/structure"
)

// DefaultLoadedGraphID names graphs of structures without PDB code or
// target number.
const DefaultLoadedGraphID = "Graph"

// PdbFileModel is a contact map data model based on a structure loaded from
// a PDB file.
type PdbFileModel struct {
	fileName    string //needed to load the ensemble graph from all models in the file
	file        *structure.File
	contactType rig.ContactType
	cutoff      float64
	minSeqSep   int
	maxSeqSep   int

	structure     *structure.Structure
	graph         *rig.Graph
	loadedGraphID string
	weighted      bool
	tempPDB       string
	ownsTempPDB   bool //false for copies
	warnings      []string

	tempDir  string
	registry *Registry
	log      *zap.Logger
}

// Option configures a PdbFileModel.
type Option func(*PdbFileModel)

// WithLogger sets the logger warnings are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(M *PdbFileModel) { M.log = l }
}

// WithTempDir sets where the temporary PDB file is written.
func WithTempDir(dir string) Option {
	return func(M *PdbFileModel) { M.tempDir = dir }
}

// WithRegistry sets the registry loaded graph IDs are assigned from.
func WithRegistry(R *Registry) Option {
	return func(M *PdbFileModel) { M.registry = R }
}

// NewPdbFileModel prepares a model for fileName. Nothing is loaded until
// Load is called.
func NewPdbFileModel(fileName, contactType string, cutoff float64, minSeqSep, maxSeqSep int, opts ...Option) (*PdbFileModel, error) {
	ct, err := rig.ParseContactType(contactType)
	if err != nil {
		return nil, newConstructionError("", err, "NewPdbFileModel")
	}
	if cutoff <= 0 {
		return nil, newConstructionError(fmt.Sprintf("invalid distance cutoff %g", cutoff), nil, "NewPdbFileModel")
	}
	if _, err := os.Stat(fileName); err != nil {
		return nil, newConstructionError("", err, "NewPdbFileModel")
	}
	M := &PdbFileModel{
		fileName:    fileName,
		file:        structure.NewFile(fileName),
		contactType: ct,
		cutoff:      cutoff,
		minSeqSep:   minSeqSep,
		maxSeqSep:   maxSeqSep,
		tempDir:     os.TempDir(),
		registry:    DefaultRegistry,
		log:         zap.NewNop(),
	}
	for _, o := range opts {
		o(M)
	}
	return M, nil
}

// Copy returns a shallow copy of the model. The copy shares the temporary
// PDB file and the loaded graph ID, and closing it frees neither.
func (M *PdbFileModel) Copy() *PdbFileModel {
	N := *M
	N.ownsTempPDB = false
	N.warnings = append([]string(nil), M.warnings...)
	return &N
}

// Load loads the chain corresponding to the given chain code and model
// serial.
func (M *PdbFileModel) Load(chain string, modelSerial int) error {
	return M.LoadEnsemble(chain, modelSerial, false)
}

// LoadEnsemble loads the chain corresponding to the given chain code and
// model serial. If ensemble is true and the file has several models, the
// graph is the weighted average of the graphs of all models instead of the
// graph of the given model only. The structure still corresponds to the
// given model.
func (M *PdbFileModel) LoadEnsemble(chain string, modelSerial int, ensemble bool) error {
	S, err := M.file.Load(chain, modelSerial)
	if err != nil {
		return newConstructionError("", err, "Load")
	}
	M.structure = S
	M.warnings = append([]string(nil), S.Warnings...)
	M.checkSecondaryStructure()

	models, err := M.file.Models()
	if err != nil {
		return newConstructionError("", err, "Load")
	}
	if !ensemble || len(models) == 1 {
		M.graph, err = rig.FromStructure(S, M.contactType, M.cutoff)
		if err != nil {
			return newConstructionError("", err, "Load")
		}
		M.weighted = false
	} else {
		M.graph, err = M.ensembleGraph(S.ChainCode)
		if err != nil {
			return newConstructionError("error loading ensemble graph", err, "Load")
		}
		M.graph.PdbCode = S.PdbCode
		M.graph.ChainCode = S.ChainCode
		M.weighted = true
	}

	M.Release()
	M.loadedGraphID = M.registry.Assign(M.graphName(), M)

	if err := M.writeTempPdbFile(); err != nil {
		return newConstructionError("writing temporary PDB file", err, "Load")
	}
	M.filterContacts()
	M.printWarnings(S.ChainCode)
	return nil
}

func (M *PdbFileModel) ensembleGraph(chain string) (*rig.Graph, error) {
	all, err := M.file.LoadAllModels(chain)
	if err != nil {
		return nil, err
	}
	graphs := make([]*rig.Graph, 0, len(all))
	for _, S := range all {
		G, err := rig.FromStructure(S, M.contactType, M.cutoff)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, G)
	}
	return rig.AverageGraph(graphs)
}

// graphName follows the usual naming: pdb code plus chain when there is a
// code, T0123-style when the file is a CASP prediction.
func (M *PdbFileModel) graphName() string {
	name := DefaultLoadedGraphID
	if M.graph.PdbCode != structure.NoPdbCode {
		name = M.graph.PdbCode + M.graph.ChainCode
	}
	if M.graph.TargetNum != 0 {
		name = fmt.Sprintf("T%04d", M.graph.TargetNum)
	}
	return name
}

func (M *PdbFileModel) checkSecondaryStructure() {
	if !M.structure.HasSecondaryStructure() {
		M.warnings = append(M.warnings, "no secondary structure annotation found")
	}
}

// writeTempPdbFile writes the loaded chain to a temporary file, which is
// the one external programs get to see.
func (M *PdbFileModel) writeTempPdbFile() error {
	f, err := os.CreateTemp(M.tempDir, M.loadedGraphID+"_*.pdb")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := structure.WritePDB(f, M.structure); err != nil {
		os.Remove(f.Name())
		return err
	}
	if M.tempPDB != "" && M.ownsTempPDB {
		os.Remove(M.tempPDB)
	}
	M.tempPDB = f.Name()
	M.ownsTempPDB = true
	return nil
}

func (M *PdbFileModel) filterContacts() {
	removed := M.graph.FilterBySeqSep(M.minSeqSep, M.maxSeqSep)
	if removed > 0 {
		M.log.Debug("contacts filtered by sequence separation",
			zap.Int("removed", removed), zap.Int("min", M.minSeqSep), zap.Int("max", M.maxSeqSep))
	}
}

func (M *PdbFileModel) printWarnings(chain string) {
	if M.graph.EdgeCount() == 0 {
		M.warnings = append(M.warnings, "the contact map is empty")
	}
	for _, w := range M.warnings {
		M.log.Warn(w, zap.String("file", filepath.Base(M.fileName)), zap.String("chain", chain))
	}
}

// Release frees the loaded graph ID, keeping the temporary PDB file. Only
// the model the ID was assigned to can release it, copies can't.
func (M *PdbFileModel) Release() {
	if owner, ok := M.registry.Get(M.loadedGraphID); ok && owner == M {
		M.registry.Release(M.loadedGraphID)
	}
}

// Close releases the loaded graph ID and removes the temporary PDB file.
// Closing a copy leaves both to the original.
func (M *PdbFileModel) Close() error {
	M.Release()
	if M.tempPDB == "" || !M.ownsTempPDB {
		M.tempPDB = ""
		return nil
	}
	err := os.Remove(M.tempPDB)
	M.tempPDB = ""
	M.ownsTempPDB = false
	return err
}

func (M *PdbFileModel) FileName() string                { return M.fileName }
func (M *PdbFileModel) Structure() *structure.Structure { return M.structure }
func (M *PdbFileModel) Graph() *rig.Graph               { return M.graph }
func (M *PdbFileModel) LoadedGraphID() string           { return M.loadedGraphID }
func (M *PdbFileModel) IsGraphWeighted() bool           { return M.weighted }
func (M *PdbFileModel) TempPDB() string                 { return M.tempPDB }
func (M *PdbFileModel) Warnings() []string              { return M.warnings }
func (M *PdbFileModel) ContactType() rig.ContactType    { return M.contactType }
func (M *PdbFileModel) Cutoff() float64                 { return M.cutoff }

// PdbCode returns the PDB code of the loaded structure.
func (M *PdbFileModel) PdbCode() string {
	if M.structure == nil {
		return structure.NoPdbCode
	}
	return M.structure.PdbCode
}

// ChainCode returns the chain code of the loaded structure.
func (M *PdbFileModel) ChainCode() string {
	if M.structure == nil {
		return ""
	}
	return M.structure.ChainCode
}
