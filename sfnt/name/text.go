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
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	xunicode "golang.org/x/text/encoding/unicode"
)

var utf16BE = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)

// EncodeMacRoman converts s to the Macintosh Roman single-byte encoding.
// An error is returned if s contains characters which cannot be
// represented.
func EncodeMacRoman(s string) ([]byte, error) {
	res, err := charmap.Macintosh.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%q cannot be represented in Mac Roman: %w", s, err)
	}
	return res, nil
}

// DecodeMacRoman converts Macintosh Roman encoded bytes to a string.
func DecodeMacRoman(b []byte) string {
	res, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		// All 256 byte values are mapped, so this cannot happen.
		panic(err)
	}
	return string(res)
}

// EncodeUTF16BE converts s to big-endian UTF-16, without byte order mark.
// Characters outside the BMP are encoded as surrogate pairs.
func EncodeUTF16BE(s string) []byte {
	res, err := utf16BE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// Invalid UTF-8 is replaced by U+FFFD, so this cannot happen.
		panic(err)
	}
	return res
}

// DecodeUTF16BE converts big-endian UTF-16 data to a string.
func DecodeUTF16BE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", errOddLength
	}
	res, err := utf16BE.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// windowsLegacy lists the multi-byte encodings used by Windows records with
// encoding IDs 2 to 5.
var windowsLegacy = map[uint16]encoding.Encoding{
	2: japanese.ShiftJIS,
	3: simplifiedchinese.GBK,
	4: traditionalchinese.Big5,
	5: korean.EUCKR,
}

// Text decodes the value of the record.
//
// Records on the Unicode platform and Windows records with encoding 0, 1
// or 10 are UTF-16BE.  Macintosh records must use the Roman encoding.
// Windows records using one of the legacy CJK encodings are also
// understood.  For all other records an error is returned.
func (r *Record) Text() (string, error) {
	switch r.PlatformID {
	case PlatformUnicode:
		return DecodeUTF16BE(r.Value)
	case PlatformMacintosh:
		if r.EncodingID == 0 {
			return DecodeMacRoman(r.Value), nil
		}
	case PlatformWindows:
		switch r.EncodingID {
		case 0, 1, 10:
			return DecodeUTF16BE(r.Value)
		case 2, 3, 4, 5:
			// Legacy encodings are often stored in 16-bit units, with
			// single byte characters padded by a zero byte.
			val := bytes.ReplaceAll(r.Value, []byte{0}, nil)
			res, err := windowsLegacy[r.EncodingID].NewDecoder().Bytes(val)
			if err != nil {
				return "", err
			}
			return string(res), nil
		}
	}
	return "", &UnsupportedEncodingError{
		PlatformID: r.PlatformID,
		EncodingID: r.EncodingID,
	}
}

// UnsupportedEncodingError is returned by Record.Text for records using
// a platform/encoding combination this package cannot decode.
type UnsupportedEncodingError struct {
	PlatformID uint16
	EncodingID uint16
}

func (err *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("name: unsupported encoding %d/%d", err.PlatformID, err.EncodingID)
}

var errOddLength = errors.New("name: UTF-16 data has odd length")
