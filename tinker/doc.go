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

/*Package tinker refines a structure against its contact map with the Tinker
molecular modelling package.

The contacts of the map become distance restraints between alpha carbons.
Tinker's distgeom program builds a number of structures satisfying them,
the one that keeps most of the contacts is chosen and converted back to
PDB. A RunAction runs all of this in the background, in a temporary
directory, and reports progress as distgeom writes its output files.

The Tinker programs pdbxyz, distgeom and xyzpdb must be installed. They are
looked up in the configured binary directory, or in the PATH.
*/
package tinker
