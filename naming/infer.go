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
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/fontfix/sfnt/name"
)

// Identity is the family and style information used to name a font.
//
// FullName is always Family + " " + Style.  PostScriptName never contains
// spaces.
type Identity struct {
	Family         string
	Style          string
	FullName       string
	PostScriptName string
}

// Value returns the string stored under the given name ID.
// For name IDs other than 1, 2, 4 and 6 the empty string is returned.
func (id Identity) Value(nameID name.ID) string {
	switch nameID {
	case name.IDFamily:
		return id.Family
	case name.IDSubfamily:
		return id.Style
	case name.IDFullName:
		return id.FullName
	case name.IDPostScriptName:
		return id.PostScriptName
	}
	return ""
}

// knownStyles are matched as substrings against the lower-cased last
// component of a file name.  "Thinline" thus counts as a style.
var knownStyles = []string{
	"regular", "bold", "italic", "light", "medium", "black", "thin", "heavy",
}

// Suffixes added by other font repair tools.
var toolSuffix = regexp.MustCompile(`(?i)_(fixed|installable|clean|rewash)$`)

var separators = regexp.MustCompile(`[-_]`)

// Infer guesses the identity of a font from its file name.
//
// The extension and a trailing "_fixed", "_installable", "_clean" or
// "_rewash" are removed first.  The remaining base name is split at
// hyphens and underscores.  If the last part looks like a style name, it
// becomes the style and the other parts form the family name.  Otherwise
// the whole base name is used as the family and the style is "Regular".
func Infer(filename string) Identity {
	base := norm.NFC.String(filename)
	base, _ = SplitExt(base)
	base = toolSuffix.ReplaceAllString(base, "")

	parts := separators.Split(base, -1)

	family := capitalize(base)
	style := "Regular"
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if isStyle(last) {
			style = capitalize(last)
			words := make([]string, len(parts)-1)
			for i, part := range parts[:len(parts)-1] {
				words[i] = capitalize(part)
			}
			family = strings.Join(words, " ")
		}
	}

	return Identity{
		Family:         family,
		Style:          style,
		FullName:       family + " " + style,
		PostScriptName: strings.ReplaceAll(family+"-"+style, " ", ""),
	}
}

func isStyle(s string) bool {
	s = strings.ToLower(s)
	for _, style := range knownStyles {
		if strings.Contains(s, style) {
			return true
		}
	}
	return false
}

// capitalize converts the first character of s to title case and all
// other characters to lower case.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}

// SplitExt splits a file name into base name and extension.  The
// extension starts at the last dot, unless all characters before that dot
// are dots themselves: ".fontrc" has no extension.
func SplitExt(filename string) (string, string) {
	idx := strings.LastIndexByte(filename, '.')
	if idx <= 0 || strings.Trim(filename[:idx], ".") == "" {
		return filename, ""
	}
	return filename[:idx], filename[idx:]
}
