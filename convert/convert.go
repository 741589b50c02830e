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

// Package convert implements the conversion of a single font file.
//
// Fonts converted to a desktop format (TTF or OTF) are repaired: if the
// family name stored in the font is unusable, new names are derived from
// the file name, and tables which prevent installation are removed.  Fonts
// converted to a web format (WOFF or WOFF2) are only repackaged.
//
// Glyph outlines are never converted.  A font with TrueType outlines
// converted to OTF is stored as an OpenType font with TrueType outlines.
package convert

import (
	"fmt"

	"seehuhn.de/go/fontfix/container"
	"seehuhn.de/go/fontfix/naming"
	"seehuhn.de/go/fontfix/sanitize"
	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/name"
)

// Result describes the outcome of a conversion.
type Result struct {
	Data   []byte
	Ext    string
	Target Target

	// Source is the container the input was stored in.
	Source sfnt.Flavor

	// Family is the family name found in the input, before any repairs.
	Family string

	// Renamed is set if the names of the font were replaced.  In this case,
	// Identity gives the new names.
	Renamed  bool
	Identity *naming.Identity

	// Sanitized lists the changes made to prepare the font for desktop
	// use.  This is nil for web targets.
	Sanitized *sanitize.Report
}

// Convert converts the font data to the given target format.
// The filename (without directory) is used to derive new names if
// the names stored in the font are unusable.
func Convert(data []byte, filename string, target Target) (*Result, error) {
	doc, source, err := container.Decode(data)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Ext:    target.Ext(),
		Target: target,
		Source: source,
	}

	if target.IsDesktop() {
		err = prepareDesktop(doc, filename, res)
		if err != nil {
			return nil, err
		}
	} else {
		// TODO(voss): decide whether web fonts should be repaired, too
		doc.Flavor = target.Flavor()
	}

	res.Data, err = container.Encode(doc)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func prepareDesktop(doc *sfnt.Document, filename string, res *Result) error {
	var tbl *name.Table
	if nameData := doc.Table(sfnt.TagName); nameData != nil {
		var err error
		tbl, err = name.Decode(nameData)
		if err != nil {
			return err
		}
	} else {
		tbl = &name.Table{}
	}

	res.Family = naming.CurrentFamily(tbl)
	if naming.IsGarbage(res.Family) {
		id := naming.Infer(filename)
		err := naming.Rebuild(tbl, id)
		if err != nil {
			return fmt.Errorf("cannot rename font: %w", err)
		}
		nameData, err := tbl.Encode()
		if err != nil {
			return err
		}
		doc.SetTable(sfnt.TagName, nameData)
		res.Renamed = true
		res.Identity = &id
	}

	report, err := sanitize.Apply(doc)
	if err != nil {
		return err
	}
	res.Sanitized = report

	doc.Flavor = sfnt.FlavorRaw
	return nil
}
