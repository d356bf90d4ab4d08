/*
 * doc.go, part of cmview.
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

/*Package pymol drives a running PyMol session from cmview. It loads the
structure of a contact map and draws contacts as distance objects and
common neighbourhoods as transparent triangles.

Commands are plain PyMol command lines. They go through a Client, which can
be PyMol's XML-RPC server (pymol -R), a raw TCP socket, or a script file
for dry runs.
*/
package pymol
