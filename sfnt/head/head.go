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

// Package head has code for accessing fields of the "head" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/fontfix/fonterror"
)

// Byte offsets of the fields used here.
const (
	fontRevisionOffset = 4
	checksumOffset     = 8
	flagsOffset        = 16

	// MinLength is the length of a version 1.0 "head" table.
	MinLength = 54
)

// FlagTransformed is bit 11 of the flags field.  It indicates that the
// font data was modified by a lossless transformation, and must be set in
// all fonts stored in WOFF2 files.
const FlagTransformed = 1 << 11

// Version represents the font revision in 16.16 fixed point format.
type Version uint32

func (v Version) String() string {
	return fmt.Sprintf("%.03f", float32(v)/65536)
}

// Major returns the integer part of the version.
func (v Version) Major() uint16 {
	return uint16(v >> 16)
}

// Minor returns the fractional part of the version, in units of 1/65536.
func (v Version) Minor() uint16 {
	return uint16(v)
}

// ChecksumAdjustment returns the checkSumAdjustment field.
func ChecksumAdjustment(data []byte) (uint32, error) {
	if len(data) < checksumOffset+4 {
		return 0, errTooShort
	}
	return binary.BigEndian.Uint32(data[checksumOffset:]), nil
}

// ClearChecksum zeros the checkSumAdjustment field in place.
func ClearChecksum(data []byte) error {
	if len(data) < checksumOffset+4 {
		return errTooShort
	}
	binary.BigEndian.PutUint32(data[checksumOffset:], 0)
	return nil
}

// FontRevision returns the revision set by the font manufacturer.
func FontRevision(data []byte) (Version, error) {
	if len(data) < fontRevisionOffset+4 {
		return 0, errTooShort
	}
	return Version(binary.BigEndian.Uint32(data[fontRevisionOffset:])), nil
}

// Flags returns the flags field.
func Flags(data []byte) (uint16, error) {
	if len(data) < flagsOffset+2 {
		return 0, errTooShort
	}
	return binary.BigEndian.Uint16(data[flagsOffset:]), nil
}

// SetFlags overwrites the flags field in place.
func SetFlags(data []byte, flags uint16) error {
	if len(data) < flagsOffset+2 {
		return errTooShort
	}
	binary.BigEndian.PutUint16(data[flagsOffset:], flags)
	return nil
}

var errTooShort = &fonterror.TableAccessError{
	Table:  "head",
	Reason: "table too short",
}
