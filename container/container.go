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

// Package container converts between raw sfnt font files and the WOFF and
// WOFF2 web font containers.
//
// Web fonts are decompressed using github.com/tdewolff/font.  When writing,
// all tables are stored without transformations: WOFF files use zlib
// compression per table, WOFF2 files use a single Brotli stream.
package container

import (
	"github.com/tdewolff/font"
	"github.com/tdewolff/parse/v2"

	"seehuhn.de/go/fontfix/fonterror"
	"seehuhn.de/go/fontfix/sfnt"
)

// Signatures found at the start of a font file.
const (
	signatureWOFF  = 0x774F4646 // "wOFF"
	signatureWOFF2 = 0x774F4632 // "wOF2"
)

// Detect determines the container format from the first bytes of a file.
func Detect(data []byte) (sfnt.Flavor, error) {
	if len(data) < 4 {
		return 0, &fonterror.LoadError{Reason: "file too short"}
	}
	r := parse.NewBinaryReaderBytes(data)
	switch magic := r.ReadUint32(); magic {
	case sfnt.ScalerTypeTrueType, sfnt.ScalerTypeCFF, sfnt.ScalerTypeApple:
		return sfnt.FlavorRaw, nil
	case signatureWOFF:
		return sfnt.FlavorWOFF, nil
	case signatureWOFF2:
		return sfnt.FlavorWOFF2, nil
	case 0x74746366: // "ttcf"
		return 0, &fonterror.LoadError{Reason: "font collections are not supported"}
	default:
		return 0, &fonterror.LoadError{Reason: "unknown font format"}
	}
}

// Decode reads a font in any of the supported containers.
// The returned document has flavor sfnt.FlavorRaw, the second return
// value gives the container the font was stored in.
func Decode(data []byte) (*sfnt.Document, sfnt.Flavor, error) {
	flavor, err := Detect(data)
	if err != nil {
		return nil, 0, err
	}

	if flavor != sfnt.FlavorRaw {
		data, err = font.ToSFNT(data)
		if err != nil {
			return nil, 0, &fonterror.LoadError{
				Reason: "cannot decompress " + flavor.String() + " data",
				Err:    err,
			}
		}
	}

	doc, err := sfnt.Read(data)
	if err != nil {
		return nil, 0, err
	}
	doc.Flavor = sfnt.FlavorRaw
	return doc, flavor, nil
}

// Encode writes doc in the container given by doc.Flavor.
//
// The table checksums and the checkSumAdjustment field of the "head" table
// are recomputed.  For WOFF2, bit 11 of the "head" flags is set and the
// "DSIG" table is removed.
func Encode(doc *sfnt.Document) ([]byte, error) {
	if doc.Flavor == sfnt.FlavorWOFF2 {
		_, err := prepareWOFF2(doc)
		if err != nil {
			return nil, err
		}
	}

	raw, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	switch doc.Flavor {
	case sfnt.FlavorRaw:
		return raw, nil
	case sfnt.FlavorWOFF:
		return EncodeWOFF(raw)
	case sfnt.FlavorWOFF2:
		return EncodeWOFF2(raw)
	default:
		return nil, &fonterror.SaveError{Err: errUnknownFlavor}
	}
}
