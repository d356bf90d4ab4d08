/*
 * file.go, part of cmview.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

type ssRange struct {
	ss         SecStruct
	chain      string
	start, end int
}

type rawModel struct {
	serial int
	atoms  []*Atom
}

// rawFile is everything read from a PDB file, before any chain or model
// is selected.
type rawFile struct {
	pdbCode string
	target  int
	seqres  map[string][]string
	ss      []ssRange
	models  []*rawModel
}

// File is a PDB file on disk. It is parsed once, the first time any of its
// methods needs the content, and can then be loaded for any chain and model.
type File struct {
	name string
	once sync.Once
	raw  *rawFile
	err  error
}

// NewFile returns a File for name. The file is not read until needed.
func NewFile(name string) *File {
	return &File{name: name}
}

// Name returns the file name.
func (F *File) Name() string {
	return F.name
}

func (F *File) parse() (*rawFile, error) {
	F.once.Do(func() {
		r, err := Open(F.name)
		if err != nil {
			F.err = errDecorate(err, "File.parse")
			return
		}
		defer r.Close()
		F.raw, F.err = readPDB(r, F.name)
	})
	return F.raw, F.err
}

// Models returns the model serials in the file.
func (F *File) Models() ([]int, error) {
	raw, err := F.parse()
	if err != nil {
		return nil, errDecorate(err, "Models")
	}
	ret := make([]int, len(raw.models))
	for i, m := range raw.models {
		ret[i] = m.serial
	}
	return ret, nil
}

// ChainCodes returns, in file order, the codes of the chains in the first
// model that contain amino acids.
func (F *File) ChainCodes() ([]string, error) {
	raw, err := F.parse()
	if err != nil {
		return nil, errDecorate(err, "ChainCodes")
	}
	if len(raw.models) == 0 {
		return nil, newError(ErrEmpty, F.name, "no atoms", nil, "ChainCodes")
	}
	return chainsOf(raw.models[0]), nil
}

func chainsOf(m *rawModel) []string {
	seen := make(map[string]bool)
	ret := make([]string, 0, 2)
	for _, a := range m.atoms {
		if !IsAminoAcid(a.ResName) && a.Het {
			continue
		}
		if !seen[a.Chain] {
			seen[a.Chain] = true
			ret = append(ret, a.Chain)
		}
	}
	return ret
}

// Load returns the given chain of the given model. An empty chain code, or
// "-", selects the first chain of the model.
func (F *File) Load(chain string, model int) (*Structure, error) {
	raw, err := F.parse()
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	var m *rawModel
	for _, v := range raw.models {
		if v.serial == model {
			m = v
			break
		}
	}
	if m == nil {
		return nil, newError(ErrNoModel, F.name, fmt.Sprintf("model %d", model), nil, "Load")
	}
	if chain == "-" {
		chain = ""
	}
	if chain == "" {
		chains := chainsOf(m)
		if len(chains) == 0 {
			return nil, newError(ErrEmpty, F.name, fmt.Sprintf("model %d", model), nil, "Load")
		}
		chain = chains[0]
	}
	S, err := build(raw, m, chain)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.filename = F.name
		}
		return nil, errDecorate(err, "Load")
	}
	return S, nil
}

// LoadAllModels loads the given chain from every model in the file.
func (F *File) LoadAllModels(chain string) ([]*Structure, error) {
	models, err := F.Models()
	if err != nil {
		return nil, errDecorate(err, "LoadAllModels")
	}
	ret := make([]*Structure, 0, len(models))
	for _, m := range models {
		S, err := F.Load(chain, m)
		if err != nil {
			return nil, errDecorate(err, "LoadAllModels")
		}
		ret = append(ret, S)
	}
	return ret, nil
}

// ReadFile is a shortcut for NewFile(name).Load(chain, model).
func ReadFile(name, chain string, model int) (*Structure, error) {
	return NewFile(name).Load(chain, model)
}

func isWater(resname string) bool {
	switch resname {
	case "HOH", "WAT", "DOD", "H2O":
		return true
	}
	return false
}

func isHydrogen(a *Atom) bool {
	if a.Element != "" {
		return a.Element == "H" || a.Element == "D"
	}
	n := strings.TrimLeft(a.Name, "0123456789")
	return strings.HasPrefix(n, "H") || strings.HasPrefix(n, "D")
}

// build assembles the chain from the atoms of model m.
func build(raw *rawFile, m *rawModel, chain string) (*Structure, error) {
	S := &Structure{
		PdbCode:   raw.pdbCode,
		TargetNum: raw.target,
		ChainCode: chain,
		Model:     m.serial,
		bySerial:  make(map[int]*Residue),
	}
	var altDropped, inChain int
	icodes := make(map[int]bool)
	nonstd := make(map[string]bool)
	var cur *Residue
	for _, a := range m.atoms {
		if a.Chain != chain {
			continue
		}
		inChain++
		if isWater(a.ResName) || (a.Het && !IsAminoAcid(a.ResName)) || isHydrogen(a) {
			continue
		}
		if a.AltLoc != ' ' && a.AltLoc != 'A' {
			altDropped++
			continue
		}
		if a.ICode != ' ' {
			icodes[a.ResSerial] = true
			continue
		}
		if cur == nil || cur.Serial != a.ResSerial {
			cur = S.Residue(a.ResSerial)
			if cur == nil {
				cur = &Residue{Serial: a.ResSerial, ICode: ' ', Name: a.ResName, One: OneLetter(a.ResName)}
				if cur.One == 'X' {
					nonstd[a.ResName] = true
				}
				S.add(cur)
			}
		}
		if cur.Atom(a.Name) != nil {
			continue
		}
		cur.Atoms = append(cur.Atoms, a)
	}
	if inChain == 0 {
		return nil, newError(ErrNoChain, "", fmt.Sprintf("chain %q in model %d", chain, m.serial), nil, "build")
	}
	if len(S.Residues) == 0 {
		return nil, newError(ErrEmpty, "", fmt.Sprintf("chain %q in model %d", chain, m.serial), nil, "build")
	}
	S.sortResidues()
	for _, v := range raw.ss {
		if v.chain != chain {
			continue
		}
		for _, r := range S.Residues {
			if r.Serial >= v.start && r.Serial <= v.end {
				r.SS = v.ss
			}
		}
	}
	if names, ok := raw.seqres[chain]; ok {
		b := make([]byte, len(names))
		for i, n := range names {
			b[i] = OneLetter(n)
		}
		S.SeqRes = string(b)
	}
	if altDropped > 0 {
		S.Warnings = append(S.Warnings, fmt.Sprintf("%d atoms with alternate locations other than A were ignored", altDropped))
	}
	if len(icodes) > 0 {
		S.Warnings = append(S.Warnings, fmt.Sprintf("%d residues with insertion codes were ignored", len(icodes)))
	}
	for n := range nonstd {
		S.Warnings = append(S.Warnings, "non-standard residue "+n)
	}
	if u := S.Unobserved(); u > 0 {
		S.Warnings = append(S.Warnings, fmt.Sprintf("%d residues in SEQRES have no coordinates", u))
	}
	return S, nil
}

func field(line string, ini, end int) string {
	if ini >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[ini:end])
}

func record(line string) string {
	return field(line, 0, 6)
}

// readPDB reads the records cmview cares about from a PDB stream.
func readPDB(r io.Reader, name string) (*rawFile, error) {
	raw := &rawFile{seqres: make(map[string][]string)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var cur *rawModel
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		switch record(line) {
		case "HEADER":
			raw.pdbCode = strings.ToLower(field(line, 62, 66))
		case "TARGET":
			f := strings.Fields(line)
			if len(f) > 1 {
				if n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(f[1]), "T")); err == nil {
					raw.target = n
				}
			}
		case "SEQRES":
			if len(line) > 19 {
				ch := field(line, 11, 12)
				raw.seqres[ch] = append(raw.seqres[ch], strings.Fields(line[19:])...)
			}
		case "HELIX":
			if s, ok := parseRange(line, Helix, 19, 21, 25, 31, 33, 37); ok {
				raw.ss = append(raw.ss, s)
			}
		case "SHEET":
			if s, ok := parseRange(line, Strand, 21, 22, 26, 32, 33, 37); ok {
				raw.ss = append(raw.ss, s)
			}
		case "TURN":
			if s, ok := parseRange(line, Turn, 19, 20, 24, 30, 31, 35); ok {
				raw.ss = append(raw.ss, s)
			}
		case "MODEL":
			serial := len(raw.models) + 1
			if f := strings.Fields(line); len(f) > 1 {
				if n, err := strconv.Atoi(f[1]); err == nil {
					serial = n
				}
			}
			cur = &rawModel{serial: serial}
			raw.models = append(raw.models, cur)
		case "ENDMDL":
			cur = nil
		case "ATOM", "HETATM":
			a, err := parseAtomLine(line)
			if err != nil {
				return nil, newError(ErrFormat, name, fmt.Sprintf("line %d", lineno), err, "readPDB")
			}
			if cur == nil {
				cur = &rawModel{serial: len(raw.models) + 1}
				raw.models = append(raw.models, cur)
			}
			cur.atoms = append(cur.atoms, a)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, newError(ErrFormat, name, fmt.Sprintf("line %d", lineno), err, "readPDB")
	}
	if len(raw.models) == 0 {
		return nil, newError(ErrEmpty, name, "no atoms", nil, "readPDB")
	}
	return raw, nil
}

// parseRange reads the chain and residue serials of a HELIX/SHEET/TURN
// record. The arguments are the 0-based columns of the start chain, start
// serial and end chain, end serial.
func parseRange(line string, ss SecStruct, chIni, serIni, serEnd, chEnd, endIni, endEnd int) (ssRange, bool) {
	if len(line) < endEnd {
		return ssRange{}, false
	}
	start, err1 := strconv.Atoi(field(line, serIni, serEnd))
	end, err2 := strconv.Atoi(field(line, endIni, endEnd))
	if err1 != nil || err2 != nil {
		return ssRange{}, false
	}
	ch := field(line, chIni, chIni+1)
	if ch != field(line, chEnd, chEnd+1) {
		return ssRange{}, false
	}
	return ssRange{ss: ss, chain: ch, start: start, end: end}, true
}

//Parses an ATOM or HETATM line.
func parseAtomLine(line string) (*Atom, error) {
	if len(line) < 54 {
		return nil, fmt.Errorf("atom record too short (%d columns)", len(line))
	}
	var err error
	at := new(Atom)
	at.Het = strings.HasPrefix(line, "HETATM")
	at.Serial, _ = strconv.Atoi(field(line, 6, 11)) //large files may use hybrid-36 serials, we don't need them
	at.Name = field(line, 12, 16)
	at.AltLoc = line[16]
	at.ResName = field(line, 17, 20)
	at.Chain = field(line, 21, 22)
	if at.ResSerial, err = strconv.Atoi(field(line, 22, 26)); err != nil {
		return nil, fmt.Errorf("residue serial: %w", err)
	}
	at.ICode = line[26]
	var c [3]float64
	for i, ini := range []int{30, 38, 46} {
		if c[i], err = strconv.ParseFloat(field(line, ini, ini+8), 64); err != nil {
			return nil, fmt.Errorf("coordinates: %w", err)
		}
	}
	at.Pos = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	at.Occupancy = 1.0
	if o, err := strconv.ParseFloat(field(line, 54, 60), 64); err == nil {
		at.Occupancy = o
	}
	if b, err := strconv.ParseFloat(field(line, 60, 66), 64); err == nil {
		at.BFactor = b
	}
	at.Element = strings.ToUpper(field(line, 76, 78))
	return at, nil
}
