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

package container

import (
	"bytes"

	"github.com/andybalholm/brotli"
	"github.com/tdewolff/parse/v2"

	"seehuhn.de/go/fontfix/fonterror"
	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/head"
)

const woff2HeaderSize = 48

// woff2KnownTags lists the tags which can be encoded by their index in the
// flags byte of a WOFF2 table directory entry.
// https://www.w3.org/TR/WOFF2/#table_dir_format
var woff2KnownTags = []string{
	"cmap", "head", "hhea", "hmtx",
	"maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca",
	"prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern",
	"LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS",
	"GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL",
	"SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar",
	"fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar",
	"mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat",
	"Gloc", "Feat", "Sill",
}

var woff2TagIndex = func() map[string]byte {
	idx := make(map[string]byte, len(woff2KnownTags))
	for i, tag := range woff2KnownTags {
		idx[tag] = byte(i)
	}
	return idx
}()

// woff2ArbitraryTag is the tag index used for tags not in woff2KnownTags.
const woff2ArbitraryTag = 63

// woff2NullTransform is the transformation version which marks "glyf" and
// "loca" tables as stored unchanged.  For all other tables, version 0 is
// the null transform.
const woff2NullTransform = 3

// EncodeWOFF2 converts a raw sfnt file into WOFF2 format.
// No table transformations are applied.  If raw has a "DSIG" table or
// bit 11 of the "head" flags is not set, the font is rewritten first.
// https://www.w3.org/TR/WOFF2/
func EncodeWOFF2(raw []byte) ([]byte, error) {
	doc, err := sfnt.Read(raw)
	if err != nil {
		return nil, err
	}
	changed, err := prepareWOFF2(doc)
	if err != nil {
		return nil, err
	}
	if changed {
		raw, err = doc.Bytes()
		if err != nil {
			return nil, &fonterror.SaveError{Err: err}
		}
	}

	scalerType, tables, err := readTables(raw)
	if err != nil {
		return nil, err
	}
	tables = locaAfterGlyf(tables)
	numTables := len(tables)

	dir := parse.NewBinaryWriter(make([]byte, 0, 6*numTables))
	for _, t := range tables {
		var transform byte
		if t.Tag == sfnt.TagGlyf || t.Tag == sfnt.TagLoca {
			transform = woff2NullTransform
		}
		if idx, ok := woff2TagIndex[t.Tag]; ok {
			dir.WriteByte(transform<<6 | idx)
		} else {
			dir.WriteByte(transform<<6 | woff2ArbitraryTag)
			dir.WriteString(t.Tag)
		}
		writeUIntBase128(dir, t.Length)
	}

	buf := &bytes.Buffer{}
	bw := brotli.NewWriterLevel(buf, brotli.BestCompression)
	for _, t := range tables {
		_, err := bw.Write(t.Data)
		if err != nil {
			return nil, &fonterror.SaveError{Err: err}
		}
	}
	err = bw.Close()
	if err != nil {
		return nil, &fonterror.SaveError{Err: err}
	}
	stream := buf.Bytes()

	unpadded := uint32(woff2HeaderSize) + uint32(dir.Len()) + uint32(len(stream))
	total := pad4(unpadded)

	major, minor := fontVersion(tables)

	w := parse.NewBinaryWriter(make([]byte, 0, total))
	w.WriteUint32(signatureWOFF2)
	w.WriteUint32(scalerType)
	w.WriteUint32(total)
	w.WriteUint16(uint16(numTables))
	w.WriteUint16(0) // reserved
	w.WriteUint32(sfntSize(tables))
	w.WriteUint32(uint32(len(stream)))
	w.WriteUint16(major)
	w.WriteUint16(minor)
	w.WriteUint32(0) // metaOffset
	w.WriteUint32(0) // metaLength
	w.WriteUint32(0) // metaOrigLength
	w.WriteUint32(0) // privOffset
	w.WriteUint32(0) // privLength
	w.WriteBytes(dir.Bytes())
	w.WriteBytes(stream)
	writePadding(w, int(unpadded))

	res := w.Bytes()
	err = checkLength(res, total)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// prepareWOFF2 makes the changes WOFF2 requires of the font data: bit 11
// of the "head" flags is set, and the "DSIG" table is removed, since the
// signature does not survive the conversion.  The return value tells
// whether the document was changed.
func prepareWOFF2(doc *sfnt.Document) (bool, error) {
	changed := doc.DeleteTable(sfnt.TagDSIG)

	data := doc.Table(sfnt.TagHead)
	if data == nil {
		return changed, nil
	}
	flags, err := head.Flags(data)
	if err != nil {
		return false, err
	}
	if flags&head.FlagTransformed != 0 {
		return changed, nil
	}
	return true, head.SetFlags(data, flags|head.FlagTransformed)
}

// locaAfterGlyf moves the "loca" table directly behind the "glyf" table.
// The order of the other tables is not changed.
func locaAfterGlyf(tables []table) []table {
	glyfIdx, locaIdx := -1, -1
	for i, t := range tables {
		switch t.Tag {
		case sfnt.TagGlyf:
			glyfIdx = i
		case sfnt.TagLoca:
			locaIdx = i
		}
	}
	if glyfIdx < 0 || locaIdx < 0 {
		return tables
	}

	res := make([]table, 0, len(tables))
	for i, t := range tables {
		if i == locaIdx {
			continue
		}
		res = append(res, t)
		if i == glyfIdx {
			res = append(res, tables[locaIdx])
		}
	}
	return res
}

// writeUIntBase128 writes x in the variable length format used by WOFF2:
// big-endian groups of 7 bits, with the high bit set on all but the last
// byte.
func writeUIntBase128(w *parse.BinaryWriter, x uint32) {
	var buf [5]byte
	i := len(buf) - 1
	buf[i] = byte(x & 0x7F)
	x >>= 7
	for x != 0 {
		i--
		buf[i] = byte(x&0x7F) | 0x80
		x >>= 7
	}
	w.WriteBytes(buf[i:])
}
