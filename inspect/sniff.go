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

// Package inspect produces read-only reports about font files.
package inspect

import (
	"github.com/tdewolff/parse/v2"

	"seehuhn.de/go/fontfix/container"
	"seehuhn.de/go/fontfix/fonterror"
	"seehuhn.de/go/fontfix/sfnt"
)

// Header contains the information from the file header of a font.
type Header struct {
	Flavor     sfnt.Flavor
	ScalerType uint32
	NumTables  int

	// The following fields are only set for WOFF and WOFF2 files.
	Length         uint32 // total size of the file, from the header
	TotalSfntSize  uint32 // size of the decompressed font
	CompressedSize uint32 // size of the Brotli stream (WOFF2 only)
	MajorVersion   uint16
	MinorVersion   uint16
}

// Sniff reads the file header of a raw sfnt, WOFF or WOFF2 file.
// Only the header is examined, the tables are not decompressed.
func Sniff(data []byte) (*Header, error) {
	flavor, err := container.Detect(data)
	if err != nil {
		return nil, err
	}

	minLength := map[sfnt.Flavor]int{
		sfnt.FlavorRaw:   12,
		sfnt.FlavorWOFF:  44,
		sfnt.FlavorWOFF2: 48,
	}[flavor]
	if len(data) < minLength {
		return nil, &fonterror.LoadError{Reason: "truncated " + flavor.String() + " header"}
	}

	r := parse.NewBinaryReaderBytes(data)
	h := &Header{Flavor: flavor}
	switch flavor {
	case sfnt.FlavorRaw:
		h.ScalerType = r.ReadUint32()
		h.NumTables = int(r.ReadUint16())
	case sfnt.FlavorWOFF, sfnt.FlavorWOFF2:
		_ = r.ReadUint32() // signature
		h.ScalerType = r.ReadUint32()
		h.Length = r.ReadUint32()
		h.NumTables = int(r.ReadUint16())
		_ = r.ReadUint16() // reserved
		h.TotalSfntSize = r.ReadUint32()
		if flavor == sfnt.FlavorWOFF2 {
			h.CompressedSize = r.ReadUint32()
		}
		h.MajorVersion = r.ReadUint16()
		h.MinorVersion = r.ReadUint16()
	}
	return h, nil
}
