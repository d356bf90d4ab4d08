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

package tinker

import (
	"errors"
	"fmt"
)

var (
	// ErrProgram is returned when a Tinker program fails.
	ErrProgram = errors.New("tinker program failed")
	// ErrNoOutput is returned when a program does not write the expected files.
	ErrNoOutput = errors.New("expected output not found")
	// ErrFormat is returned for Tinker files that can't be parsed.
	ErrFormat = errors.New("wrong format in Tinker file")
	// ErrInput is returned for runs that can't be started with the given input.
	ErrInput = errors.New("invalid input")
)

// Error is returned by runs. It names the program that failed, if any, and
// the step the run was in.
type Error struct {
	kind     error
	program  string
	step     State
	message  string
	deco     []string
	critical bool
	cause    error
}

func newError(kind error, program string, step State, message string, cause error, caller string) *Error {
	return &Error{kind: kind, program: program, step: step, message: message, cause: cause, deco: []string{caller}, critical: true}
}

func (err *Error) Error() string {
	msg := err.kind.Error()
	if err.message != "" {
		msg += ": " + err.message
	}
	if err.cause != nil {
		msg += ": " + err.cause.Error()
	}
	if err.program == "" {
		return fmt.Sprintf("tinker (%s): %s", err.step, msg)
	}
	return fmt.Sprintf("tinker %s (%s): %s", err.program, err.step, msg)
}

// Decorate adds dec to the decoration slice of the error, unless it is
// empty, and returns the slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Program returns the Tinker program that failed, or an empty string.
func (err *Error) Program() string { return err.program }

// Step returns the step the run was in when the error happened.
func (err *Error) Step() State { return err.step }

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
