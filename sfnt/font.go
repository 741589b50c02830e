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

// Package sfnt holds fonts in memory as a collection of tagged tables.
//
// A Document is created from the raw bytes of an sfnt file (TrueType or
// OpenType), edited table by table, and written back.  Table contents are
// kept as opaque byte slices; the sub-packages of this package know how
// to read and modify individual tables.
package sfnt

import (
	"bytes"
	"io"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/fontfix/sfnt/head"
)

// Scaler types found at the start of an sfnt file.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F // "OTTO"
	ScalerTypeApple    = 0x74727565 // "true"
)

// Table tags used by this module.
const (
	TagName = "name"
	TagOS2  = "OS/2"
	TagHead = "head"
	TagPost = "post"
	TagDSIG = "DSIG"
	TagFpgm = "fpgm"
	TagPrep = "prep"
	TagCvt  = "cvt "
	TagHdmx = "hdmx"
	TagVDMX = "VDMX"
	TagLTSH = "LTSH"
	TagGlyf = "glyf"
	TagLoca = "loca"
	TagCFF  = "CFF "
)

// Flavor describes the container a font is stored in.
type Flavor int

// These are the supported flavors.
const (
	FlavorRaw Flavor = iota
	FlavorWOFF
	FlavorWOFF2
)

func (f Flavor) String() string {
	switch f {
	case FlavorRaw:
		return "sfnt"
	case FlavorWOFF:
		return "woff"
	case FlavorWOFF2:
		return "woff2"
	default:
		return "unknown"
	}
}

// Document is an sfnt font held in memory.
//
// A Document is owned by a single conversion and must not be shared
// between goroutines.
type Document struct {
	ScalerType uint32

	// Flavor is the container the document will be written as.  Write
	// always produces raw sfnt data; the container package consults
	// this field to wrap the result.
	Flavor Flavor

	Tables map[string][]byte
}

// New allocates an empty document.
func New(scalerType uint32) *Document {
	return &Document{
		ScalerType: scalerType,
		Tables:     make(map[string][]byte),
	}
}

// Read decodes a raw sfnt file.
// The table data is copied, so that data can be reused by the caller.
func Read(data []byte) (*Document, error) {
	scalerType, records, err := ReadDirectory(data)
	if err != nil {
		return nil, err
	}

	doc := New(scalerType)
	for _, rec := range records {
		if _, seen := doc.Tables[rec.Tag]; seen {
			continue
		}
		body := make([]byte, rec.Length)
		copy(body, data[rec.Offset:rec.Offset+rec.Length])
		doc.Tables[rec.Tag] = body
	}
	return doc, nil
}

// Has returns true if all the given tables are present.
func (doc *Document) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := doc.Tables[tag]; !ok {
			return false
		}
	}
	return true
}

// Table returns the data of the given table, or nil if the table is missing.
// The returned slice is owned by the document.
func (doc *Document) Table(tag string) []byte {
	return doc.Tables[tag]
}

// SetTable adds or replaces a table.
func (doc *Document) SetTable(tag string, data []byte) {
	if data == nil {
		data = []byte{}
	}
	doc.Tables[tag] = data
}

// DeleteTable removes a table.  The return value indicates whether the
// table was present.
func (doc *Document) DeleteTable(tag string) bool {
	_, ok := doc.Tables[tag]
	delete(doc.Tables, tag)
	return ok
}

// Tags returns the tags of all tables, in the order used by the table
// directory.
func (doc *Document) Tags() []string {
	tags := make([]string, 0, len(doc.Tables))
	for tag := range doc.Tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// IsCFF returns true if the font uses CFF outlines.
func (doc *Document) IsCFF() bool {
	return doc.ScalerType == ScalerTypeCFF || doc.Has(TagCFF)
}

// Write writes the document as a raw sfnt file.
// The table checksums and the checkSumAdjustment field of the "head" table
// are recomputed; the "head" table is updated in place.
func (doc *Document) Write(w io.Writer) (int64, error) {
	if data, ok := doc.Tables[TagHead]; ok {
		// header.Write patches the checksum without checking the length
		if _, err := head.ChecksumAdjustment(data); err != nil {
			return 0, err
		}
	}
	return header.Write(w, doc.ScalerType, doc.Tables)
}

// Bytes returns the document as a raw sfnt file.
func (doc *Document) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	_, err := doc.Write(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
