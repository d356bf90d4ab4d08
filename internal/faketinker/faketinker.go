/*
 * faketinker.go, part of cmview.
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

// Package faketinker provides shell script stand-ins for the Tinker
// programs, for tests. They keep the file naming of the real programs but
// only move coordinates around.
package faketinker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const pdbxyz = `#!/bin/sh
in="$1"
out="${in%.pdb}.xyz"
awk '/^ATOM|^HETATM/ { n++; nm[n] = substr($0, 13, 4); gsub(/ /, "", nm[n]); x[n] = substr($0, 31, 8) + 0; y[n] = substr($0, 39, 8) + 0; z[n] = substr($0, 47, 8) + 0 }
END { printf "%6d  fake pdbxyz\n", n; for (i = 1; i <= n; i++) printf "%6d  %-3s %12.6f%12.6f%12.6f %5d\n", i, nm[i], x[i], y[i], z[i], 1 }' "$in" > "$out"
echo "pdbxyz: wrote $out"
`

// Distgeom writes structure i with the input coordinates scaled by i,
// so the first one keeps every contact.
const Distgeom = `#!/bin/sh
in="$1"
n="$2"
base="${in%.xyz}"
[ -f "$base.key" ] || { echo "distgeom: no key file for $base" >&2; exit 1; }
echo "$@" >> "$(dirname "$in")/distgeom.args"
i=1
while [ "$i" -le "$n" ]; do
	out=$(printf '%s.%03d' "$base" "$i")
	awk -v s="$i" 'NR == 1 { print; next } { printf "%6d  %-3s %12.6f%12.6f%12.6f %5d\n", $1, $2, $3 * s, $4 * s, $5 * s, $6 }' "$in" > "$out.tmp"
	mv "$out.tmp" "$out"
	i=$((i + 1))
done
`

const xyzpdb = `#!/bin/sh
in="$1"
out="${in%.xyz}.pdb"
awk 'NR == 1 { next } { if ($2 == "N") r++; printf "ATOM  %5d  %-3s ALA A%4d    %8.3f%8.3f%8.3f  1.00 20.00           %s\n", $1, $2, r, $3, $4, $5, substr($2, 1, 1) }' "$in" > "$out"
echo "END" >> "$out"
`

// FailingDistgeom fails with a message.
const FailingDistgeom = `#!/bin/sh
echo "distgeom: too many violated restraints"
exit 3
`

// SlowDistgeom never finishes on its own.
const SlowDistgeom = `#!/bin/sh
exec sleep 30
`

// Install writes pdbxyz, xyzpdb and the given distgeom script into a
// temporary directory and returns it. Tests are skipped on Windows.
func Install(t testing.TB, distgeom string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake Tinker programs are shell scripts")
	}
	dir := t.TempDir()
	for name, body := range map[string]string{"pdbxyz": pdbxyz, "distgeom": distgeom, "xyzpdb": xyzpdb} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
