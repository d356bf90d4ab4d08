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

package model

// ConstructionError is returned when a model can't be built or loaded. It
// wraps the structure or graph error that caused it, if any.
type ConstructionError struct {
	message string
	deco    []string
	cause   error
}

func newConstructionError(message string, cause error, caller string) *ConstructionError {
	return &ConstructionError{message: message, cause: cause, deco: []string{caller}}
}

func (err *ConstructionError) Error() string {
	switch {
	case err.cause == nil:
		return "model construction: " + err.message
	case err.message == "":
		return "model construction: " + err.cause.Error()
	}
	return "model construction: " + err.message + ": " + err.cause.Error()
}

// Decorate adds dec to the list of callers the error went through.
func (err *ConstructionError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *ConstructionError) Unwrap() error { return err.cause }
