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

// Package name has code for reading and writing OpenType "name" tables
// at the level of individual name records.
//
// Unlike a decoded, per-language view of the table, a Table keeps every
// record with its raw bytes, so that records this package does not
// understand survive a decode/encode cycle unchanged.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"fmt"
	"sort"

	"seehuhn.de/go/fontfix/fonterror"
)

// ID identifies the semantic role of a name record.
type ID uint16

// Selected name IDs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
const (
	IDCopyright      ID = 0
	IDFamily         ID = 1
	IDSubfamily      ID = 2
	IDIdentifier     ID = 3
	IDFullName       ID = 4
	IDVersion        ID = 5
	IDPostScriptName ID = 6
	IDTrademark      ID = 7
	IDManufacturer   ID = 8
	IDDesigner       ID = 9
	IDDescription    ID = 10
)

func (id ID) String() string {
	switch id {
	case IDCopyright:
		return "Copyright"
	case IDFamily:
		return "Family"
	case IDSubfamily:
		return "Subfamily"
	case IDIdentifier:
		return "Identifier"
	case IDFullName:
		return "FullName"
	case IDVersion:
		return "Version"
	case IDPostScriptName:
		return "PostScriptName"
	case IDTrademark:
		return "Trademark"
	case IDManufacturer:
		return "Manufacturer"
	case IDDesigner:
		return "Designer"
	case IDDescription:
		return "Description"
	default:
		return fmt.Sprintf("ID(%d)", uint16(id))
	}
}

// Platform IDs.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
)

// Record is a single entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     ID
	Value      []byte // encoded as specified by PlatformID and EncodingID
}

func (r *Record) String() string {
	return fmt.Sprintf("%d/%d/%d %s %q",
		r.PlatformID, r.EncodingID, r.LanguageID, r.NameID, r.Value)
}

// Table contains all records of a "name" table.
type Table struct {
	Records []*Record

	// LangTags holds the UTF-16BE encoded language tags of a version 1
	// table.  Records with LanguageID >= 0x8000 refer to these.
	LangTags [][]byte
}

// Decode reads the binary representation of a "name" table.
// The returned records do not share memory with data.
func Decode(data []byte) (*Table, error) {
	if len(data) < 6 {
		return nil, errMalformedNames
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	numRec := int(data[2])<<8 | int(data[3])
	storageOffset := int(data[4])<<8 | int(data[5])

	if version > 1 {
		return nil, &fonterror.TableAccessError{
			Table:  "name",
			Reason: fmt.Sprintf("unsupported table version %d", version),
		}
	}

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) {
		return nil, errMalformedNames
	}

	numLang := 0
	langBase := 0
	if version > 0 {
		if endOfHeader+2 > len(data) {
			return nil, errMalformedNames
		}
		numLang = int(data[endOfHeader])<<8 | int(data[endOfHeader+1])
		langBase = endOfHeader + 2
		endOfHeader = langBase + numLang*4
		if endOfHeader > len(data) {
			return nil, errMalformedNames
		}
	}
	if storageOffset > len(data) {
		return nil, errMalformedNames
	}

	getString := func(offset, length int) ([]byte, error) {
		start := storageOffset + offset
		if start+length > len(data) {
			return nil, errMalformedNames
		}
		res := make([]byte, length)
		copy(res, data[start:start+length])
		return res, nil
	}

	t := &Table{
		Records: make([]*Record, 0, numRec),
	}
	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])
		val, err := getString(nameOffset, nameLen)
		if err != nil {
			return nil, err
		}
		rec := &Record{
			PlatformID: uint16(data[pos])<<8 | uint16(data[pos+1]),
			EncodingID: uint16(data[pos+2])<<8 | uint16(data[pos+3]),
			LanguageID: uint16(data[pos+4])<<8 | uint16(data[pos+5]),
			NameID:     ID(data[pos+6])<<8 | ID(data[pos+7]),
			Value:      val,
		}
		t.Records = append(t.Records, rec)
	}
	for i := 0; i < numLang; i++ {
		pos := langBase + i*4
		tagLen := int(data[pos])<<8 | int(data[pos+1])
		tagOffset := int(data[pos+2])<<8 | int(data[pos+3])
		tag, err := getString(tagOffset, tagLen)
		if err != nil {
			return nil, err
		}
		t.LangTags = append(t.LangTags, tag)
	}

	return t, nil
}

// Encode converts the table into its binary form.
//
// Records are written sorted by platform ID, encoding ID, language ID and
// name ID.  Identical strings are stored only once.  A version 1 table is
// written if and only if language tags are present.
func (t *Table) Encode() ([]byte, error) {
	records := make([]*Record, len(t.Records))
	copy(records, t.Records)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].PlatformID != records[j].PlatformID {
			return records[i].PlatformID < records[j].PlatformID
		}
		if records[i].EncodingID != records[j].EncodingID {
			return records[i].EncodingID < records[j].EncodingID
		}
		if records[i].LanguageID != records[j].LanguageID {
			return records[i].LanguageID < records[j].LanguageID
		}
		return records[i].NameID < records[j].NameID
	})

	numRec := len(records)
	numLang := len(t.LangTags)
	if numRec > 0xFFFF || numLang > 0xFFFF {
		return nil, errTooLarge
	}

	b := newNameBuilder()
	type location struct {
		offset, length uint16
	}
	recLoc := make([]location, numRec)
	for i, rec := range records {
		offset, length, err := b.Add(rec.Value)
		if err != nil {
			return nil, err
		}
		recLoc[i] = location{offset, length}
	}
	langLoc := make([]location, numLang)
	for i, tag := range t.LangTags {
		offset, length, err := b.Add(tag)
		if err != nil {
			return nil, err
		}
		langLoc[i] = location{offset, length}
	}

	var version uint16
	startOfStrings := 6 + numRec*12
	if numLang > 0 {
		version = 1
		startOfStrings += 2 + numLang*4
	}
	if startOfStrings > 0xFFFF {
		return nil, errTooLarge
	}

	res := make([]byte, startOfStrings+len(b.data))
	res[0] = byte(version >> 8)
	res[1] = byte(version)
	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)
	res[4] = byte(startOfStrings >> 8)
	res[5] = byte(startOfStrings)
	for i, rec := range records {
		base := 6 + i*12
		loc := recLoc[i]
		res[base] = byte(rec.PlatformID >> 8)
		res[base+1] = byte(rec.PlatformID)
		res[base+2] = byte(rec.EncodingID >> 8)
		res[base+3] = byte(rec.EncodingID)
		res[base+4] = byte(rec.LanguageID >> 8)
		res[base+5] = byte(rec.LanguageID)
		res[base+6] = byte(rec.NameID >> 8)
		res[base+7] = byte(rec.NameID)
		res[base+8] = byte(loc.length >> 8)
		res[base+9] = byte(loc.length)
		res[base+10] = byte(loc.offset >> 8)
		res[base+11] = byte(loc.offset)
	}
	if version > 0 {
		base := 6 + numRec*12
		res[base] = byte(numLang >> 8)
		res[base+1] = byte(numLang)
		for i, loc := range langLoc {
			pos := base + 2 + i*4
			res[pos] = byte(loc.length >> 8)
			res[pos+1] = byte(loc.length)
			res[pos+2] = byte(loc.offset >> 8)
			res[pos+3] = byte(loc.offset)
		}
	}
	copy(res[startOfStrings:], b.data)

	return res, nil
}

// Remove deletes all records with one of the given name IDs.
// The number of deleted records is returned.
func (t *Table) Remove(ids ...ID) int {
	drop := make(map[ID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := t.Records[:0]
	for _, rec := range t.Records {
		if !drop[rec.NameID] {
			kept = append(kept, rec)
		}
	}
	n := len(t.Records) - len(kept)
	for i := len(kept); i < len(t.Records); i++ {
		t.Records[i] = nil
	}
	t.Records = kept
	return n
}

// Find returns all records with the given name ID, in table order.
func (t *Table) Find(id ID) []*Record {
	var res []*Record
	for _, rec := range t.Records {
		if rec.NameID == id {
			res = append(res, rec)
		}
	}
	return res
}

type nameBuilder struct {
	data []byte
	idx  map[string]uint16
}

func newNameBuilder() *nameBuilder {
	return &nameBuilder{
		idx: make(map[string]uint16),
	}
}

func (nb *nameBuilder) Add(b []byte) (offs, length uint16, err error) {
	if len(b) > 0xFFFF {
		return 0, 0, errTooLarge
	}
	key := string(b)
	if idx, ok := nb.idx[key]; ok {
		return idx, uint16(len(b)), nil
	}
	if len(nb.data) > 0xFFFF {
		return 0, 0, errTooLarge
	}
	idx := uint16(len(nb.data))
	nb.idx[key] = idx
	nb.data = append(nb.data, b...)
	return idx, uint16(len(b)), nil
}

var (
	errMalformedNames = &fonterror.TableAccessError{
		Table:  "name",
		Reason: "malformed name table",
	}
	errTooLarge = &fonterror.TableAccessError{
		Table:  "name",
		Reason: "string storage exceeds 64kB",
	}
)
