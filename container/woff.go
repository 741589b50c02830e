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
	"compress/zlib"
	"errors"
	"fmt"
	"sort"

	"github.com/tdewolff/parse/v2"

	"seehuhn.de/go/fontfix/fonterror"
	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/head"
)

const (
	woffHeaderSize   = 44
	woffDirEntrySize = 20
)

// table is a table of a raw sfnt file, as needed by the encoders.
type table struct {
	sfnt.Record
	Data []byte
}

// readTables splits a raw sfnt file into its tables.
// The result is sorted by tag.
func readTables(raw []byte) (uint32, []table, error) {
	scalerType, records, err := sfnt.ReadDirectory(raw)
	if err != nil {
		return 0, nil, err
	}
	tables := make([]table, len(records))
	for i, rec := range records {
		tables[i] = table{
			Record: rec,
			Data:   raw[rec.Offset : rec.Offset+rec.Length],
		}
	}
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Tag < tables[j].Tag
	})
	return scalerType, tables, nil
}

// sfntSize returns the size of the raw sfnt file containing the given
// tables, including padding.
func sfntSize(tables []table) uint32 {
	size := uint32(12 + 16*len(tables))
	for _, t := range tables {
		size += pad4(t.Length)
	}
	return size
}

// fontVersion returns the major and minor version for the WOFF header,
// taken from the fontRevision field of the "head" table.
func fontVersion(tables []table) (uint16, uint16) {
	for _, t := range tables {
		if t.Tag != sfnt.TagHead {
			continue
		}
		v, err := head.FontRevision(t.Data)
		if err != nil {
			break
		}
		return v.Major(), v.Minor()
	}
	return 0, 0
}

// EncodeWOFF converts a raw sfnt file into WOFF 1.0 format.
// https://www.w3.org/TR/WOFF/
func EncodeWOFF(raw []byte) ([]byte, error) {
	scalerType, tables, err := readTables(raw)
	if err != nil {
		return nil, err
	}
	numTables := len(tables)

	compressed := make([][]byte, numTables)
	for i, t := range tables {
		body, err := zlibCompress(t.Data)
		if err != nil {
			return nil, &fonterror.SaveError{Err: err}
		}
		if len(body) >= len(t.Data) {
			// store uncompressed
			body = t.Data
		}
		compressed[i] = body
	}

	offset := uint32(woffHeaderSize + woffDirEntrySize*numTables)
	offsets := make([]uint32, numTables)
	for i, body := range compressed {
		offsets[i] = offset
		offset += pad4(uint32(len(body)))
	}
	total := offset

	major, minor := fontVersion(tables)

	w := parse.NewBinaryWriter(make([]byte, 0, total))
	w.WriteUint32(signatureWOFF)
	w.WriteUint32(scalerType)
	w.WriteUint32(total)
	w.WriteUint16(uint16(numTables))
	w.WriteUint16(0) // reserved
	w.WriteUint32(sfntSize(tables))
	w.WriteUint16(major)
	w.WriteUint16(minor)
	w.WriteUint32(0) // metaOffset
	w.WriteUint32(0) // metaLength
	w.WriteUint32(0) // metaOrigLength
	w.WriteUint32(0) // privOffset
	w.WriteUint32(0) // privLength

	for i, t := range tables {
		w.WriteString(t.Tag)
		w.WriteUint32(offsets[i])
		w.WriteUint32(uint32(len(compressed[i])))
		w.WriteUint32(t.Length)
		w.WriteUint32(t.CheckSum)
	}

	for _, body := range compressed {
		w.WriteBytes(body)
		writePadding(w, len(body))
	}

	res := w.Bytes()
	err = checkLength(res, total)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// checkLength verifies that an encoder produced exactly the number of bytes
// announced in the file header.
func checkLength(res []byte, total uint32) error {
	if uint32(len(res)) != total {
		return &fonterror.SaveError{
			Err: fmt.Errorf("%w: wrote %d bytes, header says %d", errSizeMismatch, len(res), total),
		}
	}
	return nil
}

func zlibCompress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}

func writePadding(w *parse.BinaryWriter, n int) {
	for k := n % 4; k != 0 && k < 4; k++ {
		w.WriteByte(0)
	}
}

var (
	errUnknownFlavor = errors.New("unknown font container")
	errSizeMismatch  = errors.New("size mismatch")
)
