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

package name

import (
	"testing"

	"golang.org/x/text/language"
)

func TestLanguageTags(t *testing.T) {
	for _, list := range []map[uint16]string{appleBCP, msBCP} {
		for _, lang := range list {
			tag := language.MustParse(lang)
			script, _ := tag.Script()
			if script.String() == "Zzzz" {
				t.Error(lang)
			}
		}
	}
}

func TestRecordLanguage(t *testing.T) {
	cases := []struct {
		rec  Record
		want language.Tag
	}{
		{Record{PlatformID: 1, EncodingID: 0, LanguageID: 0}, language.English},
		{Record{PlatformID: 3, EncodingID: 1, LanguageID: 1033}, language.AmericanEnglish},
		{Record{PlatformID: 3, EncodingID: 1, LanguageID: 0x0407}, language.MustParse("de-DE")},
		{Record{PlatformID: 3, EncodingID: 1, LanguageID: 0x7FFF}, language.Und},
		{Record{PlatformID: 0, EncodingID: 3, LanguageID: 0}, language.Und},
	}
	for _, c := range cases {
		got := c.rec.Language()
		if got != c.want {
			t.Errorf("%d/%d/%d: got %s, want %s",
				c.rec.PlatformID, c.rec.EncodingID, c.rec.LanguageID, got, c.want)
		}
	}
}
