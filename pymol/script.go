/*
 * script.go, part of cmview.
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
	_ "embed"
	"os"
	"path/filepath"
)

// ScriptName is the name the helper script is written under.
const ScriptName = "cmview_graph.py"

//go:embed graph.py
var graphScript []byte

// GraphScript returns the helper script that defines the triangle command.
func GraphScript() []byte {
	return append([]byte(nil), graphScript...)
}

// WriteScript writes the helper script into dir and returns its path.
func WriteScript(dir string) (string, error) {
	p := filepath.Join(dir, ScriptName)
	if err := os.WriteFile(p, graphScript, 0o644); err != nil {
		return "", newError(ErrScript, "", p, err, "WriteScript")
	}
	return p, nil
}
