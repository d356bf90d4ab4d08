/*
 * errors.go, part of cmview.
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
	"errors"
	"fmt"
)

// Kinds of load errors. They can be checked with errors.Is on any error
// returned by this package.
var (
	ErrOpen    = errors.New("unable to open file")
	ErrFormat  = errors.New("wrong format in PDB file")
	ErrNoModel = errors.New("model not found")
	ErrNoChain = errors.New("chain not found")
	ErrEmpty   = errors.New("no residues loaded")
)

// Error is the error type for PDB loading. The Decorate method allows to add
// the names of the functions the error went through without wrapping it.
type Error struct {
	kind     error
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	cause    error
}

func newError(kind error, filename, message string, cause error, caller string) *Error {
	return &Error{kind: kind, message: message, filename: filename, deco: []string{caller}, critical: true, cause: cause}
}

func (err *Error) Error() string {
	msg := err.kind.Error()
	if err.message != "" {
		msg += ": " + err.message
	}
	if err.cause != nil {
		msg += ": " + err.cause.Error()
	}
	if err.filename == "" {
		return msg
	}
	return fmt.Sprintf("pdb file %s: %s", err.filename, msg)
}

// Decorate adds dec to the decoration slice of the error, unless it is
// empty, and returns the slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the file the error is associated with.
func (err *Error) FileName() string { return err.filename }

// Critical returns whether the error is critical.
func (err *Error) Critical() bool { return err.critical }

func (err *Error) Unwrap() []error {
	if err.cause == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.cause}
}

type decorator interface {
	Decorate(string) []string
}

//errDecorate decorates err with the caller's name if err supports it,
//and returns it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if d, ok := err.(decorator); ok {
		d.Decorate(caller)
	}
	return err
}
