/*
 * write.go, part of cmview.
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
	"os"
)

// WritePDB writes the loaded chain of S to w in PDB format.
func WritePDB(w io.Writer, S *Structure) error {
	if len(S.Residues) == 0 {
		return newError(ErrEmpty, "", "nothing to write", nil, "WritePDB")
	}
	out := bufio.NewWriter(w)
	if S.PdbCode != NoPdbCode {
		fmt.Fprintf(out, "%-10s%-40s%-9s   %-4s\n", "HEADER", "", "", S.PdbCode)
	}
	fmt.Fprint(out, "REMARK     WRITTEN BY CMVIEW\n")
	serial := 0
	last := S.Residues[len(S.Residues)-1]
	for _, r := range S.Residues {
		for _, a := range r.Atoms {
			serial++
			first := "ATOM"
			if a.Het {
				first = "HETATM"
			}
			name := a.Name
			//4 chars for the atom name are used when hydrogens are included.
			if len(name) < 4 {
				name = " " + name
			}
			_, err := fmt.Fprintf(out, "%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
				first, serial, name, r.Name, S.ChainCode, r.Serial, a.Pos.X, a.Pos.Y, a.Pos.Z, a.Occupancy, a.BFactor, a.Element)
			if err != nil {
				return newError(ErrFormat, "", "writing atom", err, "WritePDB")
			}
		}
	}
	serial++
	fmt.Fprintf(out, "TER   %5d      %3s %1s%4d\n", serial, last.Name, S.ChainCode, last.Serial)
	fmt.Fprint(out, "END\n")
	if err := out.Flush(); err != nil {
		return newError(ErrFormat, "", "flushing", err, "WritePDB")
	}
	return nil
}

// WritePDBFile writes S to the file name, which is created or truncated.
func WritePDBFile(name string, S *Structure) error {
	f, err := os.Create(name)
	if err != nil {
		return newError(ErrOpen, name, "", err, "WritePDBFile")
	}
	if err := WritePDB(f, S); err != nil {
		f.Close()
		return errDecorate(err, "WritePDBFile")
	}
	if err := f.Close(); err != nil {
		return newError(ErrOpen, name, "closing", err, "WritePDBFile")
	}
	return nil
}
