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

package testfont

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/brotli"
)

// ReadWOFF extracts the tables from a WOFF file.
// This is an independent implementation, used to check the output of
// the encoders.
func ReadWOFF(data []byte) (map[string][]byte, error) {
	if len(data) < 44 || string(data[:4]) != "wOFF" {
		return nil, errors.New("not a WOFF file")
	}
	if binary.BigEndian.Uint32(data[8:12]) != uint32(len(data)) {
		return nil, errors.New("wrong length")
	}
	numTables := int(binary.BigEndian.Uint16(data[12:14]))
	if len(data) < 44+20*numTables {
		return nil, errors.New("truncated directory")
	}

	res := make(map[string][]byte, numTables)
	for i := 0; i < numTables; i++ {
		entry := data[44+20*i : 64+20*i]
		tag := string(entry[0:4])
		offset := binary.BigEndian.Uint32(entry[4:8])
		compLength := binary.BigEndian.Uint32(entry[8:12])
		origLength := binary.BigEndian.Uint32(entry[12:16])
		if offset%4 != 0 {
			return nil, fmt.Errorf("%q: misaligned table", tag)
		}
		if uint64(offset)+uint64(compLength) > uint64(len(data)) {
			return nil, fmt.Errorf("%q: table out of range", tag)
		}
		body := data[offset : offset+compLength]
		if compLength < origLength {
			zr, err := zlib.NewReader(bytes.NewReader(body))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", tag, err)
			}
			body, err = io.ReadAll(zr)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", tag, err)
			}
		}
		if uint32(len(body)) != origLength {
			return nil, fmt.Errorf("%q: wrong length", tag)
		}
		res[tag] = body
	}
	return res, nil
}

// WOFF2Entry is one entry of a WOFF2 table directory.
type WOFF2Entry struct {
	Tag       string
	Transform int
	Length    uint32
}

// ReadWOFF2 extracts the tables from a WOFF2 file which uses only null
// transforms.  The table directory is returned in file order.
// Brotli decompression uses github.com/dsnet/compress, so that the
// encoder is checked against an independent implementation.
func ReadWOFF2(data []byte) (map[string][]byte, []WOFF2Entry, error) {
	if len(data) < 48 || string(data[:4]) != "wOF2" {
		return nil, nil, errors.New("not a WOFF2 file")
	}
	if binary.BigEndian.Uint32(data[8:12]) != uint32(len(data)) || len(data)%4 != 0 {
		return nil, nil, errors.New("wrong length")
	}
	numTables := int(binary.BigEndian.Uint16(data[12:14]))
	compressedSize := binary.BigEndian.Uint32(data[20:24])

	pos := 48
	var dir []WOFF2Entry
	for i := 0; i < numTables; i++ {
		if pos >= len(data) {
			return nil, nil, errors.New("truncated directory")
		}
		flags := data[pos]
		pos++
		var tag string
		if idx := flags & 0x3F; idx == 63 {
			if pos+4 > len(data) {
				return nil, nil, errors.New("truncated directory")
			}
			tag = string(data[pos : pos+4])
			pos += 4
		} else if int(idx) < len(knownTags) {
			tag = knownTags[idx]
		} else {
			return nil, nil, errors.New("invalid tag index")
		}
		transform := int(flags >> 6)
		nullTransform := 0
		if tag == "glyf" || tag == "loca" {
			nullTransform = 3
		}
		if transform != nullTransform {
			return nil, nil, fmt.Errorf("%q: unsupported transform %d", tag, transform)
		}

		var length uint32
		for k := 0; ; k++ {
			if k == 5 || pos >= len(data) {
				return nil, nil, errors.New("invalid UIntBase128")
			}
			b := data[pos]
			pos++
			if k == 0 && b == 0x80 {
				return nil, nil, errors.New("leading zeros in UIntBase128")
			}
			length = length<<7 | uint32(b&0x7F)
			if b&0x80 == 0 {
				break
			}
		}
		dir = append(dir, WOFF2Entry{Tag: tag, Transform: transform, Length: length})
	}

	if uint64(pos)+uint64(compressedSize) > uint64(len(data)) {
		return nil, nil, errors.New("compressed data out of range")
	}
	br, err := brotli.NewReader(bytes.NewReader(data[pos:pos+int(compressedSize)]), nil)
	if err != nil {
		return nil, nil, err
	}
	stream, err := io.ReadAll(br)
	if err != nil {
		return nil, nil, err
	}
	err = br.Close()
	if err != nil {
		return nil, nil, err
	}

	res := make(map[string][]byte, numTables)
	var offset uint32
	for _, entry := range dir {
		end := offset + entry.Length
		if end > uint32(len(stream)) {
			return nil, nil, fmt.Errorf("%q: table out of range", entry.Tag)
		}
		res[entry.Tag] = stream[offset:end]
		offset = end
	}
	if offset != uint32(len(stream)) {
		return nil, nil, errors.New("unused data in Brotli stream")
	}
	return res, dir, nil
}

var knownTags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}
