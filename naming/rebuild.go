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

package naming

import (
	"fmt"

	"seehuhn.de/go/fontfix/sfnt/name"
)

var requiredNameIDs = [...]name.ID{
	name.IDFamily,
	name.IDSubfamily,
	name.IDFullName,
	name.IDPostScriptName,
}

// RequiredNameIDs returns the name IDs which are replaced by Rebuild,
// in the order the new records are added.  The caller may modify the
// returned slice.
func RequiredNameIDs() []name.ID {
	return append([]name.ID(nil), requiredNameIDs[:]...)
}

// Language IDs of the records written by Rebuild.
const (
	macEnglish     = 0
	windowsEnglish = 0x0409 // en-US
)

// Rebuild replaces the family, subfamily, full name and PostScript name
// records of tbl with values taken from id.
//
// For each of these name IDs, one Macintosh Roman record (1/0/0) and one
// Windows Unicode record (3/1/1033) is added.  All other records are left
// untouched.  If one of the values cannot be represented in the Macintosh
// Roman encoding, an error is returned and tbl is not modified.
func Rebuild(tbl *name.Table, id Identity) error {
	var newRecords []*name.Record
	for _, nameID := range requiredNameIDs {
		val := id.Value(nameID)

		mac, err := name.EncodeMacRoman(val)
		if err != nil {
			return fmt.Errorf("name %s: %w", nameID, err)
		}
		newRecords = append(newRecords,
			&name.Record{
				PlatformID: name.PlatformMacintosh,
				EncodingID: 0,
				LanguageID: macEnglish,
				NameID:     nameID,
				Value:      mac,
			},
			&name.Record{
				PlatformID: name.PlatformWindows,
				EncodingID: 1,
				LanguageID: windowsEnglish,
				NameID:     nameID,
				Value:      name.EncodeUTF16BE(val),
			})
	}

	tbl.Remove(requiredNameIDs[:]...)
	tbl.Records = append(tbl.Records, newRecords...)
	return nil
}
