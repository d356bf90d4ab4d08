/*
 * enums.go, part of cmview.
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

package tinker

import (
	"fmt"
	"strings"
)

// Parallel says how distgeom structures are distributed.
type Parallel int

const (
	None  Parallel = iota //one distgeom process builds all structures
	Local                 //structures are split among local workers
)

func (P Parallel) String() string {
	switch P {
	case None:
		return "none"
	case Local:
		return "local"
	}
	return fmt.Sprintf("Parallel(%d)", int(P))
}

// ParseParallel parses "none" or "local".
func ParseParallel(s string) (Parallel, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return None, nil
	case "local":
		return Local, nil
	}
	return None, fmt.Errorf("tinker: unknown parallel mode %q", s)
}

// Refinement is the distgeom refinement protocol.
type Refinement int

const (
	Minimization Refinement = iota
	SimulatedAnnealing
)

func (R Refinement) String() string {
	switch R {
	case Minimization:
		return "minimization"
	case SimulatedAnnealing:
		return "annealing"
	}
	return fmt.Sprintf("Refinement(%d)", int(R))
}

// anneal is distgeom's answer to the simulated annealing question.
func (R Refinement) anneal() string {
	if R == SimulatedAnnealing {
		return "Y"
	}
	return "N"
}

// State is the step a run is in.
type State int

const (
	Init       State = iota //input files, pdbxyz
	Structures              //distgeom
	Selection               //scoring the structures
	Conversion              //xyzpdb
	Done
)

var stateNames = [...]string{"init", "structures", "selection", "conversion", "done"}

func (S State) String() string {
	if S < 0 || int(S) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(S))
	}
	return stateNames[S]
}
