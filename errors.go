/*
 * errors.go, part of gopackmol.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package packmol

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Kind identifies a class of failure. Kinds are errors themselves, so
// errors.Is(err, packmol.BusyError) works for any error built by this module.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	InvalidInput       = Kind("invalid input")
	NotFound           = Kind("not found")
	ParseError         = Kind("parse error")
	ProcessIOError     = Kind("process I/O error")
	ProcessLaunchError = Kind("process launch error")
	BusyError          = Kind("solver already running")
	ExitError          = Kind("solver exited with error")
)

// Decorator is the interface for errors that can carry the chain of callers they
// went through. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Decorator interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// Error is the general error type of gopackmol.
type Error struct {
	message  string
	kind     Kind
	cause    error
	deco     []string
	critical bool
}

// NewError returns an Error of the given kind. caller is the name of the
// function producing the error and becomes the first decoration.
func NewError(kind Kind, caller, format string, a ...any) Error {
	return Error{message: fmt.Sprintf(format, a...), kind: kind, deco: []string{caller}, critical: true}
}

// WrapError is NewError with an underlying cause.
func WrapError(kind Kind, caller string, cause error, format string, a ...any) Error {
	e := NewError(kind, caller, format, a...)
	e.cause = cause
	return e
}

func (err Error) Error() string {
	msg := err.kind.Error()
	if err.message != "" {
		msg += ": " + err.message
	}
	if err.cause != nil {
		msg += ": " + err.cause.Error()
	}
	if len(err.deco) > 0 {
		msg = strings.Join(err.deco, "/") + ": " + msg
	}
	return msg
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. An empty dec just returns the current slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	//clipped, so errors decorated from the same value do not share storage.
	err.deco = append(slices.Clip(err.deco), dec)
	return err.deco
}

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

// Kind returns the kind of the error.
func (err Error) Kind() Kind { return err.kind }

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (err Error) Unwrap() []error {
	if err.cause == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.cause}
}

// errDecorate returns err with caller appended to its decorations, if err
// is an Error. Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	var e Error
	if !errors.As(err, &e) {
		return err
	}
	e.deco = e.Decorate(caller)
	return e
}

// ErrDecorate is errDecorate for the other gopackmol packages.
func ErrDecorate(err error, caller string) error {
	return errDecorate(err, caller)
}
