// seehuhn.de/go/fontfix - repair the names and containers of font files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fonterror defines the errors reported by the font conversion
// pipeline.
package fonterror

import (
	"errors"
	"fmt"
)

// LoadError indicates that the input could not be parsed as a font.
type LoadError struct {
	Reason string
	Err    error
}

func (err *LoadError) Error() string {
	if err.Err != nil {
		return "load: " + err.Reason + ": " + err.Err.Error()
	}
	return "load: " + err.Reason
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

// TableAccessError indicates that a table is malformed in a way which
// prevents a field from being read or written.
type TableAccessError struct {
	Table  string
	Reason string
}

func (err *TableAccessError) Error() string {
	return fmt.Sprintf("table %q: %s", err.Table, err.Reason)
}

// SaveError indicates that the converted font could not be serialized or
// written to its destination.
type SaveError struct {
	Path string // can be empty
	Err  error
}

func (err *SaveError) Error() string {
	if err.Path == "" {
		return "save: " + err.Err.Error()
	}
	return "save " + err.Path + ": " + err.Err.Error()
}

func (err *SaveError) Unwrap() error {
	return err.Err
}

// UnexpectedError wraps any other failure during the pipeline.
// Stack is set if the error was caused by a recovered panic.
type UnexpectedError struct {
	Err   error
	Stack []byte
}

func (err *UnexpectedError) Error() string {
	return "unexpected: " + err.Err.Error()
}

func (err *UnexpectedError) Unwrap() error {
	return err.Err
}

// Classify returns err unchanged if it is one of the error types of this
// package, or wraps it into an UnexpectedError otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var (
		loadErr  *LoadError
		tableErr *TableAccessError
		saveErr  *SaveError
		otherErr *UnexpectedError
	)
	switch {
	case errors.As(err, &loadErr),
		errors.As(err, &tableErr),
		errors.As(err, &saveErr),
		errors.As(err, &otherErr):
		return err
	}
	return &UnexpectedError{Err: err}
}

// IsTableAccess returns true if err is, or wraps, a TableAccessError.
func IsTableAccess(err error) bool {
	var tableErr *TableAccessError
	return errors.As(err, &tableErr)
}
