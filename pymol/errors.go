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

package pymol

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection is returned when there is nothing to show.
	ErrEmptySelection = errors.New("empty selection")
	// ErrScheme is returned by Dial for URLs it does not know how to reach.
	ErrScheme = errors.New("unsupported PyMol URL")
	// ErrFault is returned when the PyMol server rejects a command.
	ErrFault = errors.New("PyMol server fault")
	// ErrScript is returned when the helper script can't be written.
	ErrScript = errors.New("unable to write helper script")
)

// Error is returned by clients and adaptors of this package.
type Error struct {
	kind     error
	message  string
	url      string
	deco     []string
	critical bool
	cause    error
}

func newError(kind error, url, message string, cause error, caller string) *Error {
	return &Error{kind: kind, url: url, message: message, cause: cause, deco: []string{caller}, critical: true}
}

func (err *Error) Error() string {
	msg := err.kind.Error()
	if err.message != "" {
		msg += ": " + err.message
	}
	if err.cause != nil {
		msg += ": " + err.cause.Error()
	}
	if err.url == "" {
		return "pymol: " + msg
	}
	return fmt.Sprintf("pymol %s: %s", err.url, msg)
}

// Decorate adds dec to the decoration slice of the error, unless it is
// empty, and returns the slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// URL returns the server the error is associated with, if any.
func (err *Error) URL() string { return err.url }

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

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if d, ok := err.(decorator); ok {
		d.Decorate(caller)
	}
	return err
}
