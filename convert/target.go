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

package convert

import (
	"strings"

	"seehuhn.de/go/fontfix/sfnt"
)

// Target is the requested output format of a conversion.
type Target int

// These are the supported output formats.
const (
	TTF Target = iota
	OTF
	WOFF
	WOFF2
)

// ParseTarget converts a format name like "woff2" into a Target.
// Case, surrounding white space and a leading dot are ignored.
// Unknown names select TTF.
func ParseTarget(s string) Target {
	s = strings.ToLower(strings.TrimSpace(s))
	switch strings.TrimPrefix(s, ".") {
	case "otf":
		return OTF
	case "woff":
		return WOFF
	case "woff2":
		return WOFF2
	default:
		return TTF
	}
}

func (t Target) String() string {
	switch t {
	case TTF:
		return "ttf"
	case OTF:
		return "otf"
	case WOFF:
		return "woff"
	case WOFF2:
		return "woff2"
	default:
		return "unknown"
	}
}

// Ext returns the file name extension for the target, including the dot.
func (t Target) Ext() string {
	switch t {
	case OTF:
		return ".otf"
	case WOFF:
		return ".woff"
	case WOFF2:
		return ".woff2"
	default:
		return ".ttf"
	}
}

// IsDesktop returns true for the targets meant for installation on a
// desktop system, and false for web fonts.
func (t Target) IsDesktop() bool {
	return t == TTF || t == OTF
}

// Flavor returns the container used for the target.
func (t Target) Flavor() sfnt.Flavor {
	switch t {
	case WOFF:
		return sfnt.FlavorWOFF
	case WOFF2:
		return sfnt.FlavorWOFF2
	default:
		return sfnt.FlavorRaw
	}
}
