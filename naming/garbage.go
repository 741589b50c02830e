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

// Package naming implements the heuristics used to repair the family and
// style names of a font.
//
// IsGarbage decides whether the family name stored in a font is usable.
// If it is not, Infer guesses a new identity from the file name and
// Rebuild replaces the naming records of the font with this identity.
// All functions in this package are pure.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"seehuhn.de/go/fontfix/sfnt/name"
)

// IsGarbage reports whether text is unusable as a font family name.
// This is the case if text is empty, shorter than two characters after
// removing surrounding white space, or consists only of punctuation,
// symbols and underscores.
func IsGarbage(text string) bool {
	if text == "" {
		return true
	}
	s := strings.TrimSpace(text)
	if utf8.RuneCountInString(s) < 2 {
		return true
	}
	for _, r := range s {
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune reports whether r is a letter or a number.  Note that unlike
// in regular expressions, the underscore is not a word character here.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// CurrentFamily returns the family name stored in tbl.
//
// This is the value of the first record with name ID 1 which can be
// decoded.  Records using an unsupported or invalid encoding are skipped.
// If no family name can be found, the empty string is returned.
func CurrentFamily(tbl *name.Table) string {
	if tbl == nil {
		return ""
	}
	for _, rec := range tbl.Records {
		if rec.NameID != name.IDFamily {
			continue
		}
		text, err := rec.Text()
		if err != nil {
			continue
		}
		return text
	}
	return ""
}
