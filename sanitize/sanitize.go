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

// Package sanitize removes font data which prevents installation or which
// may be inconsistent after the names of a font have been edited.
package sanitize

import (
	"fmt"

	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/head"
	"seehuhn.de/go/fontfix/sfnt/os2"
	"seehuhn.de/go/fontfix/sfnt/post"
)

// JunkTables lists the tables removed by Apply.
//
// DSIG is invalidated by any change to the font.  The hinting tables are
// removed together, since hint programs may depend on each other.  The
// device metrics tables are hint dependent, too.
var JunkTables = []string{
	sfnt.TagDSIG,
	sfnt.TagFpgm,
	sfnt.TagPrep,
	sfnt.TagCvt,
	sfnt.TagHdmx,
	sfnt.TagVDMX,
	sfnt.TagLTSH,
}

// Report lists the changes made by Apply.
type Report struct {
	ClearedEmbedding bool
	Removed          []string
	StrippedPost     bool
	ClearedChecksum  bool
}

// Apply prepares doc for installation on a desktop system.
//
// Embedding restrictions are removed, the tables in JunkTables are
// deleted, the "post" table is reduced to version 3 and the
// checkSumAdjustment field of the "head" table is set to zero.  Missing
// tables are skipped.  Applying the function a second time has no further
// effect.
func Apply(doc *sfnt.Document) (*Report, error) {
	r := &Report{}

	if data := doc.Table(sfnt.TagOS2); data != nil {
		err := os2.ClearEmbedding(data)
		if err != nil {
			return nil, err
		}
		r.ClearedEmbedding = true
	}

	for _, tag := range JunkTables {
		if doc.DeleteTable(tag) {
			r.Removed = append(r.Removed, tag)
		}
	}

	if data := doc.Table(sfnt.TagPost); data != nil {
		stripped, err := post.StripGlyphNames(data)
		if err != nil {
			return nil, err
		}
		doc.SetTable(sfnt.TagPost, stripped)
		r.StrippedPost = true
	}

	if data := doc.Table(sfnt.TagHead); data != nil {
		err := head.ClearChecksum(data)
		if err != nil {
			return nil, err
		}
		r.ClearedChecksum = true
	}

	return r, nil
}

func (r *Report) String() string {
	return fmt.Sprintf("embedding cleared: %t, removed: %v, post stripped: %t, checksum cleared: %t",
		r.ClearedEmbedding, r.Removed, r.StrippedPost, r.ClearedChecksum)
}
