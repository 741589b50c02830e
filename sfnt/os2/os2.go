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

// Package os2 has code for accessing the embedding permissions in the
// "OS/2" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2#fstype
package os2

import (
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/fontfix/fonterror"
)

const (
	versionOffset = 0
	fsTypeOffset  = 8
)

// Permissions describes rights to embed and use a font.
type Permissions int

func (perm Permissions) String() string {
	switch perm {
	case PermInstall:
		return "can install"
	case PermEdit:
		return "can edit"
	case PermView:
		return "can view"
	case PermRestricted:
		return "restricted"
	default:
		return fmt.Sprintf("Permissions(%d)", perm)
	}
}

// The possible permission values.
const (
	PermInstall    Permissions = iota // bits 0-3 unset
	PermEdit                          // bit 3
	PermView                          // bit 2
	PermRestricted                    // bit 1
)

// Embedding describes the fsType field of the "OS/2" table.
type Embedding struct {
	Raw          uint16
	Use          Permissions
	NoSubsetting bool // the font may not be subsetted prior to embedding
	OnlyBitmap   bool // only bitmaps contained in the font may be embedded
}

// ReadEmbedding decodes the fsType field.
func ReadEmbedding(data []byte) (*Embedding, error) {
	if len(data) < fsTypeOffset+2 {
		return nil, errTooShort
	}
	version := binary.BigEndian.Uint16(data[versionOffset:])
	raw := binary.BigEndian.Uint16(data[fsTypeOffset:])

	permBits := raw
	if version == 0 {
		permBits &= 0xF
	}
	var use Permissions
	if permBits&8 != 0 {
		use = PermEdit
	} else if permBits&4 != 0 {
		use = PermView
	} else if permBits&2 != 0 {
		use = PermRestricted
	} else {
		use = PermInstall
	}

	return &Embedding{
		Raw:          raw,
		Use:          use,
		NoSubsetting: permBits&0x0100 != 0,
		OnlyBitmap:   permBits&0x0200 != 0,
	}, nil
}

// ClearEmbedding sets the fsType field to 0 (installable embedding),
// in place.
func ClearEmbedding(data []byte) error {
	if len(data) < fsTypeOffset+2 {
		return errTooShort
	}
	binary.BigEndian.PutUint16(data[fsTypeOffset:], 0)
	return nil
}

var errTooShort = &fonterror.TableAccessError{
	Table:  "OS/2",
	Reason: "table too short for fsType",
}
