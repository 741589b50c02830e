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

package sfnt

import (
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/fontfix/fonterror"
)

// Record describes one entry of the table directory of an sfnt file.
type Record struct {
	Tag      string
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

// maxTables limits the size of the table directory.
// The largest number observed in practice is below 40.
const maxTables = 280

// ReadDirectory decodes the header and the table directory of a raw sfnt
// file.  Records are returned in file order.
func ReadDirectory(data []byte) (uint32, []Record, error) {
	if len(data) < 12 {
		return 0, nil, &fonterror.LoadError{Reason: "file too short"}
	}
	scalerType := binary.BigEndian.Uint32(data[0:4])
	numTables := int(binary.BigEndian.Uint16(data[4:6]))

	switch scalerType {
	case ScalerTypeTrueType, ScalerTypeCFF, ScalerTypeApple:
		// pass
	case 0x74746366: // "ttcf"
		return 0, nil, &fonterror.LoadError{Reason: "font collections are not supported"}
	default:
		return 0, nil, &fonterror.LoadError{
			Reason: fmt.Sprintf("unknown scaler type 0x%08x", scalerType),
		}
	}
	if numTables == 0 {
		return 0, nil, &fonterror.LoadError{Reason: "no tables found"}
	}
	if numTables > maxTables {
		return 0, nil, &fonterror.LoadError{Reason: "too many tables"}
	}
	if len(data) < 12+16*numTables {
		return 0, nil, &fonterror.LoadError{Reason: "truncated table directory"}
	}

	records := make([]Record, numTables)
	for i := range records {
		buf := data[12+16*i : 28+16*i]
		rec := Record{
			Tag:      string(buf[0:4]),
			CheckSum: binary.BigEndian.Uint32(buf[4:8]),
			Offset:   binary.BigEndian.Uint32(buf[8:12]),
			Length:   binary.BigEndian.Uint32(buf[12:16]),
		}
		if !isTag(rec.Tag) {
			return 0, nil, &fonterror.LoadError{
				Reason: fmt.Sprintf("invalid table tag %q", rec.Tag),
			}
		}
		end := uint64(rec.Offset) + uint64(rec.Length)
		if rec.Offset < 12 || end > uint64(len(data)) {
			return 0, nil, &fonterror.LoadError{
				Reason: fmt.Sprintf("table %q extends beyond end of file", rec.Tag),
			}
		}
		records[i] = rec
	}
	return scalerType, records, nil
}

// isTag checks whether s is a valid table tag: four printable ASCII
// characters.
func isTag(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
