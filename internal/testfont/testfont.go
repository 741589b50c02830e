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

// Package testfont provides fonts for use in unit tests.
package testfont

import (
	"encoding/binary"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/head"
	"seehuhn.de/go/fontfix/sfnt/name"
	"seehuhn.de/go/fontfix/sfnt/post"
)

// GoRegular returns a copy of the Go Regular font, a TrueType font with
// well-formed names.
func GoRegular() []byte {
	res := make([]byte, len(goregular.TTF))
	copy(res, goregular.TTF)
	return res
}

// GoRegularDocument returns the Go Regular font as a document.
func GoRegularDocument() *sfnt.Document {
	doc, err := sfnt.Read(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return doc
}

// Damaged returns the Go Regular font with a family name of ".", an
// embedding restriction, and a DSIG table: the typical result of
// extracting a font from a web page or a document.
func Damaged() *sfnt.Document {
	doc := GoRegularDocument()

	tbl := &name.Table{}
	for _, id := range []name.ID{name.IDFamily, name.IDSubfamily, name.IDFullName, name.IDPostScriptName} {
		tbl.Records = append(tbl.Records,
			&name.Record{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: id, Value: []byte(".")},
			&name.Record{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: id, Value: name.EncodeUTF16BE(".")})
	}
	tbl.Records = append(tbl.Records,
		&name.Record{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: name.IDCopyright, Value: name.EncodeUTF16BE("Copyright 2016 The Go Authors")})
	nameData, err := tbl.Encode()
	if err != nil {
		panic(err)
	}
	doc.SetTable(sfnt.TagName, nameData)

	os2 := doc.Table(sfnt.TagOS2)
	binary.BigEndian.PutUint16(os2[8:], 0x0002)

	doc.SetTable(sfnt.TagDSIG, DSIG())
	return doc
}

// DSIG returns an empty version 1 digital signature table.
func DSIG() []byte {
	return []byte{0, 0, 0, 1, 0, 0, 0, 0}
}

// Synthetic returns a small font which contains all tables touched by the
// sanitizer, with contents just detailed enough to be edited.  Glyph
// outlines are missing, so the font cannot be rendered.
func Synthetic() *sfnt.Document {
	doc := sfnt.New(sfnt.ScalerTypeTrueType)

	headData := make([]byte, head.MinLength)
	binary.BigEndian.PutUint32(headData[0:], 0x00010000)  // version
	binary.BigEndian.PutUint32(headData[4:], 0x00018000)  // fontRevision 1.5
	binary.BigEndian.PutUint32(headData[8:], 0x12345678)  // checkSumAdjustment
	binary.BigEndian.PutUint32(headData[12:], 0x5F0F3CF5) // magicNumber
	binary.BigEndian.PutUint16(headData[18:], 1000)       // unitsPerEm
	doc.SetTable(sfnt.TagHead, headData)

	os2 := make([]byte, 78)
	binary.BigEndian.PutUint16(os2[0:], 1)      // version
	binary.BigEndian.PutUint16(os2[8:], 0x0302) // restricted, no subsetting, bitmap only
	doc.SetTable(sfnt.TagOS2, os2)

	// version 2.0 post table with one custom glyph name
	postData := make([]byte, post.HeaderLength, post.HeaderLength+2+4+6)
	binary.BigEndian.PutUint32(postData[0:], post.Version2)
	binary.BigEndian.PutUint32(postData[4:], 0xFFF40000) // italic angle -12
	binary.BigEndian.PutUint16(postData[8:], 0xFF9C)     // underline position -100
	binary.BigEndian.PutUint16(postData[10:], 50)        // underline thickness
	postData = append(postData, 0, 2)       // numGlyphs
	postData = append(postData, 0, 0, 1, 2) // glyphNameIndex: .notdef, custom
	postData = append(postData, 5, 'a', 'l', 'p', 'h', 'a')
	doc.SetTable(sfnt.TagPost, postData)

	tbl := &name.Table{
		Records: []*name.Record{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: name.IDFamily, Value: name.EncodeUTF16BE("Synthetic")},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: name.IDSubfamily, Value: name.EncodeUTF16BE("Regular")},
		},
	}
	nameData, err := tbl.Encode()
	if err != nil {
		panic(err)
	}
	doc.SetTable(sfnt.TagName, nameData)

	doc.SetTable(sfnt.TagDSIG, DSIG())
	doc.SetTable(sfnt.TagFpgm, []byte{0xB0, 0x00}) // PUSHB[0] 0
	doc.SetTable(sfnt.TagPrep, []byte{0xB0, 0x01})
	doc.SetTable(sfnt.TagCvt, []byte{0, 10, 0, 20})
	doc.SetTable(sfnt.TagHdmx, []byte{0, 0, 0, 0, 0, 0, 0, 0})
	doc.SetTable(sfnt.TagVDMX, []byte{0, 1, 0, 0, 0, 0})
	doc.SetTable(sfnt.TagLTSH, []byte{0, 0, 0, 2, 1, 1})
	doc.SetTable("maxp", []byte{0, 0, 0x50, 0, 0, 2})

	return doc
}
