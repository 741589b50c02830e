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
	"golang.org/x/text/language"
)

// Language returns the language of a record, or language.Und if the
// language ID is not known.
func (r *Record) Language() language.Tag {
	var key string
	switch r.PlatformID {
	case PlatformMacintosh:
		key = appleBCP[r.LanguageID]
	case PlatformWindows:
		key = msBCP[r.LanguageID]
	}
	if key == "" {
		return language.Und
	}
	tag, err := language.Parse(key)
	if err != nil {
		return language.Und
	}
	return tag
}

// Selected Macintosh language codes
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#macintosh-language-ids
var appleBCP = map[uint16]string{
	0:   "en",      // English
	1:   "fr",      // French
	2:   "de",      // German
	3:   "it",      // Italian
	4:   "nl",      // Dutch
	5:   "sv",      // Swedish
	6:   "es",      // Spanish
	7:   "da",      // Danish
	8:   "pt",      // Portuguese
	9:   "no",      // Norwegian
	10:  "he",      // Hebrew
	11:  "ja",      // Japanese
	12:  "ar",      // Arabic
	13:  "fi",      // Finnish
	14:  "el",      // Greek
	15:  "is",      // Icelandic
	17:  "tr",      // Turkish
	18:  "hr",      // Croatian
	19:  "zh-Hant", // Chinese (traditional)
	21:  "hi",      // Hindi
	22:  "th",      // Thai
	23:  "ko",      // Korean
	24:  "lt",      // Lithuanian
	25:  "pl",      // Polish
	26:  "hu",      // Hungarian
	27:  "et",      // Estonian
	28:  "lv",      // Latvian
	31:  "fa",      // Farsi/Persian
	32:  "ru",      // Russian
	33:  "zh-Hans", // Chinese (simplified)
	37:  "ro",      // Romanian
	38:  "cs",      // Czech
	39:  "sk",      // Slovak
	40:  "sl",      // Slovenian
	42:  "sr",      // Serbian
	44:  "bg",      // Bulgarian
	45:  "uk",      // Ukrainian
	80:  "vi",      // Vietnamese
	81:  "id",      // Indonesian
	128: "cy",      // Welsh
	129: "eu",      // Basque
	130: "ca",      // Catalan
	140: "gl",      // Galician
	141: "af",      // Afrikaans
}

// Selected Windows language codes
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#windows-language-ids
var msBCP = map[uint16]string{
	0x0401: "ar-SA", // Arabic, Saudi Arabia
	0x0402: "bg-BG", // Bulgarian, Bulgaria
	0x0403: "ca-ES", // Catalan, Catalan
	0x0404: "zh-TW", // Chinese, Taiwan
	0x0405: "cs-CZ", // Czech, Czech Republic
	0x0406: "da-DK", // Danish, Denmark
	0x0407: "de-DE", // German, Germany
	0x0408: "el-GR", // Greek, Greece
	0x0409: "en-US", // English, United States
	0x040a: "es-ES", // Spanish (Traditional Sort), Spain
	0x040b: "fi-FI", // Finnish, Finland
	0x040c: "fr-FR", // French, France
	0x040d: "he-IL", // Hebrew, Israel
	0x040e: "hu-HU", // Hungarian, Hungary
	0x0410: "it-IT", // Italian, Italy
	0x0411: "ja-JP", // Japanese, Japan
	0x0412: "ko-KR", // Korean, Korea
	0x0413: "nl-NL", // Dutch, Netherlands
	0x0414: "nb-NO", // Norwegian (Bokmal), Norway
	0x0415: "pl-PL", // Polish, Poland
	0x0416: "pt-BR", // Portuguese, Brazil
	0x0418: "ro-RO", // Romanian, Romania
	0x0419: "ru-RU", // Russian, Russia
	0x041b: "sk-SK", // Slovak, Slovakia
	0x041d: "sv-SE", // Swedish, Sweden
	0x041f: "tr-TR", // Turkish, Turkey
	0x0422: "uk-UA", // Ukrainian, Ukraine
	0x0424: "sl-SI", // Slovenian, Slovenia
	0x0439: "hi-IN", // Hindi, India
	0x0804: "zh-CN", // Chinese, People's Republic of China
	0x0807: "de-CH", // German, Switzerland
	0x0809: "en-GB", // English, United Kingdom
	0x080a: "es-MX", // Spanish, Mexico
	0x080c: "fr-BE", // French, Belgium
	0x0816: "pt-PT", // Portuguese, Portugal
	0x0c04: "zh-HK", // Chinese, Hong Kong S.A.R.
	0x0c07: "de-AT", // German, Austria
	0x0c09: "en-AU", // English, Australia
	0x0c0a: "es-ES", // Spanish (Modern Sort), Spain
	0x0c0c: "fr-CA", // French, Canada
	0x1009: "en-CA", // English, Canada
}
