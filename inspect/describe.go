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
	"io"
	"sort"

	"golang.org/x/text/language"

	"seehuhn.de/go/fontfix/container"
	"seehuhn.de/go/fontfix/naming"
	"seehuhn.de/go/fontfix/sanitize"
	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/head"
	"seehuhn.de/go/fontfix/sfnt/name"
	"seehuhn.de/go/fontfix/sfnt/os2"
)

// Report summarizes the properties of a font which matter for repairs.
type Report struct {
	Flavor   sfnt.Flavor
	IsCFF    bool
	Revision head.Version
	Tables   []TableInfo

	// Family is the family name used to decide whether the font needs to
	// be renamed.
	Family    string
	IsGarbage bool

	Embedding *os2.Embedding // nil if there is no OS/2 table
	Junk      []string       // tables which the sanitizer would remove
	Names     []NameInfo
}

// TableInfo describes one table of a font.
type TableInfo struct {
	Tag    string
	Length int

	// BadChecksum is set if the checksum in the table directory of a raw
	// sfnt file does not match the table data.
	BadChecksum bool
}

// NameInfo is one decoded record of the "name" table.
type NameInfo struct {
	PlatformID uint16
	EncodingID uint16
	Language   language.Tag
	NameID     name.ID
	Text       string // empty if the record cannot be decoded
}

// Describe analyses the font contained in data.
func Describe(data []byte) (*Report, error) {
	doc, flavor, err := container.Decode(data)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Flavor: flavor,
		IsCFF:  doc.IsCFF(),
	}
	var stored map[string]uint32
	if flavor == sfnt.FlavorRaw {
		_, records, err := sfnt.ReadDirectory(data)
		if err != nil {
			return nil, err
		}
		stored = make(map[string]uint32, len(records))
		for _, rec := range records {
			stored[rec.Tag] = rec.CheckSum
		}
	}
	for _, tag := range doc.Tags() {
		info := TableInfo{Tag: tag, Length: len(doc.Table(tag))}
		if want, ok := stored[tag]; ok {
			info.BadChecksum = tableChecksum(tag, doc.Table(tag)) != want
		}
		r.Tables = append(r.Tables, info)
	}
	if headData := doc.Table(sfnt.TagHead); headData != nil {
		r.Revision, _ = head.FontRevision(headData)
	}

	var tbl *name.Table
	if nameData := doc.Table(sfnt.TagName); nameData != nil {
		tbl, err = name.Decode(nameData)
		if err != nil {
			return nil, err
		}
		for _, rec := range tbl.Records {
			text, _ := rec.Text()
			r.Names = append(r.Names, NameInfo{
				PlatformID: rec.PlatformID,
				EncodingID: rec.EncodingID,
				Language:   rec.Language(),
				NameID:     rec.NameID,
				Text:       text,
			})
		}
		sort.SliceStable(r.Names, func(i, j int) bool {
			return r.Names[i].NameID < r.Names[j].NameID
		})
	}
	r.Family = naming.CurrentFamily(tbl)
	r.IsGarbage = naming.IsGarbage(r.Family)

	if os2Data := doc.Table(sfnt.TagOS2); os2Data != nil {
		r.Embedding, err = os2.ReadEmbedding(os2Data)
		if err != nil {
			return nil, err
		}
	}

	for _, tag := range sanitize.JunkTables {
		if doc.Has(tag) {
			r.Junk = append(r.Junk, tag)
		}
	}

	return r, nil
}

// tableChecksum computes the checksum of a table as stored in the table
// directory.  For the "head" table, the checkSumAdjustment field is taken
// to be zero.
func tableChecksum(tag string, data []byte) uint32 {
	if tag != sfnt.TagHead {
		return sfnt.Checksum(data)
	}
	tmp := bytes.Clone(data)
	if err := head.ClearChecksum(tmp); err != nil {
		return sfnt.Checksum(data)
	}
	return sfnt.Checksum(tmp)
}

// Format writes a human readable version of the report to w.
func (r *Report) Format(w io.Writer) error {
	outlines := "TrueType"
	if r.IsCFF {
		outlines = "CFF"
	}
	_, err := fmt.Fprintf(w, "container: %s, outlines: %s, revision: %s\n",
		r.Flavor, outlines, r.Revision)
	if err != nil {
		return err
	}

	status := "ok"
	if r.IsGarbage {
		status = "garbage"
	}
	_, err = fmt.Fprintf(w, "family: %q (%s)\n", r.Family, status)
	if err != nil {
		return err
	}

	if r.Embedding != nil {
		_, err = fmt.Fprintf(w, "embedding: %s (fsType 0x%04x)\n", r.Embedding.Use, r.Embedding.Raw)
		if err != nil {
			return err
		}
	}
	if len(r.Junk) > 0 {
		_, err = fmt.Fprintf(w, "tables to remove: %q\n", r.Junk)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w, "tables:")
	if err != nil {
		return err
	}
	for _, t := range r.Tables {
		mark := ""
		if t.BadChecksum {
			mark = " (bad checksum)"
		}
		_, err = fmt.Fprintf(w, "  %q %7d%s\n", t.Tag, t.Length, mark)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w, "names:")
	if err != nil {
		return err
	}
	for _, n := range r.Names {
		_, err = fmt.Fprintf(w, "  %d/%d %-6s %-14s %q\n",
			n.PlatformID, n.EncodingID, n.Language, n.NameID, n.Text)
		if err != nil {
			return err
		}
	}
	return nil
}
