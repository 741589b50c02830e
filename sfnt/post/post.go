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

// Package post has code for reading and rewriting the "post" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/post
package post

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/fontfix/fonterror"
)

// Table versions.
const (
	Version2 = 0x00020000 // glyph name index and custom names
	Version3 = 0x00030000 // no glyph names
)

// HeaderLength is the length of the fixed part of the table, common to
// all versions.
const HeaderLength = 32

// Info contains the fixed header fields of the "post" table.
type Info struct {
	Version            uint32
	ItalicAngle        float64 // Italic angle in degrees
	UnderlinePosition  int16   // Underline position (negative)
	UnderlineThickness int16
	IsFixedPitch       bool
}

// Read decodes the header of a "post" table.
func Read(data []byte) (*Info, error) {
	post := &postEnc{}
	err := binary.Read(bytes.NewReader(data), binary.BigEndian, post)
	if err != nil {
		return nil, errTooShort
	}
	info := &Info{
		Version:            post.Version,
		ItalicAngle:        float64(post.ItalicAngle) / 65536,
		UnderlinePosition:  post.UnderlinePosition,
		UnderlineThickness: post.UnderlineThickness,
		IsFixedPitch:       post.IsFixedPitch != 0,
	}
	return info, nil
}

// StripGlyphNames converts the table to version 3.0, which carries no glyph
// names.  The glyph name index and all custom names are dropped, the other
// header fields are kept.  The result does not share memory with data.
func StripGlyphNames(data []byte) ([]byte, error) {
	if len(data) < HeaderLength {
		return nil, errTooShort
	}
	res := make([]byte, HeaderLength)
	copy(res, data[:HeaderLength])
	binary.BigEndian.PutUint32(res[0:4], Version3)
	return res, nil
}

type postEnc struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}

var errTooShort = &fonterror.TableAccessError{
	Table:  "post",
	Reason: "table too short",
}
