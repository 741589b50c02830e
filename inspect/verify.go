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

package inspect

import (
	"bytes"
	"fmt"

	xsfnt "golang.org/x/image/font/sfnt"
	gosfnt "seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontfix/container"
	"seehuhn.de/go/fontfix/sfnt"
)

// Verification contains the names of a font as seen by two independent
// font parsers.
type Verification struct {
	Family         string // family name, as read by golang.org/x/image
	NumGlyphs      int
	PostScriptName string // as read by seehuhn.de/go/sfnt
	IsGlyf         bool
}

// Verify checks that a converted font can be parsed by other font
// libraries, and returns the names these libraries report.  Web fonts are
// decompressed before the check.
func Verify(data []byte) (*Verification, error) {
	flavor, err := container.Detect(data)
	if err != nil {
		return nil, err
	}
	if flavor != sfnt.FlavorRaw {
		doc, _, err := container.Decode(data)
		if err != nil {
			return nil, err
		}
		data, err = doc.Bytes()
		if err != nil {
			return nil, err
		}
	}

	f, err := xsfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("x/image: %w", err)
	}
	family, err := f.Name(nil, xsfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("x/image: family name: %w", err)
	}

	info, err := gosfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sfnt: %w", err)
	}

	res := &Verification{
		Family:         family,
		NumGlyphs:      f.NumGlyphs(),
		PostScriptName: info.PostScriptName(),
		IsGlyf:         info.IsGlyf(),
	}
	if n := info.NumGlyphs(); n != res.NumGlyphs {
		return nil, fmt.Errorf("inconsistent glyph count: %d != %d", n, res.NumGlyphs)
	}
	return res, nil
}
