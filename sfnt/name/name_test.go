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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontfix/fonterror"
)

func TestRoundTrip(t *testing.T) {
	mac, err := EncodeMacRoman("Test Family")
	if err != nil {
		t.Fatal(err)
	}
	tbl := &Table{
		Records: []*Record{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: IDFamily, Value: EncodeUTF16BE("Test Family")},
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: IDFamily, Value: mac},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: IDSubfamily, Value: EncodeUTF16BE("Bold")},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 256, Value: EncodeUTF16BE("Test Family")},
		},
	}
	data, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if data[1] != 0 {
		t.Errorf("wrong version %d", data[1])
	}

	tbl2, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	// Encode sorts the records, the original order is not preserved.
	want := []*Record{tbl.Records[1], tbl.Records[0], tbl.Records[2], tbl.Records[3]}
	if d := cmp.Diff(want, tbl2.Records); d != "" {
		t.Error(d)
	}

	// Identical strings are shared.
	if len(data) != 6+4*12+len(mac)+len("Test Family")*2+len("Bold")*2 {
		t.Errorf("unexpected table length %d", len(data))
	}
}

func TestVersion1(t *testing.T) {
	tbl := &Table{
		Records: []*Record{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x8000, NameID: IDFamily, Value: EncodeUTF16BE("Famille")},
		},
		LangTags: [][]byte{EncodeUTF16BE("fr")},
	}
	data, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if data[1] != 1 {
		t.Fatalf("wrong version %d", data[1])
	}
	tbl2, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(tbl, tbl2); d != "" {
		t.Error(d)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := [][]byte{
		nil,
		{0, 0, 0},
		{0, 0, 0, 1, 0, 18}, // missing record
		{0, 2, 0, 0, 0, 6},  // unknown version
		{0, 0, 0, 1, 0, 18, 0, 3, 0, 1, 4, 9, 0, 1, 0, 10, 0, 0}, // string out of range
	}
	for i, data := range cases {
		_, err := Decode(data)
		if err == nil {
			t.Errorf("%d: expected error", i)
			continue
		}
		if !fonterror.IsTableAccess(err) {
			t.Errorf("%d: wrong error type %T", i, err)
		}
	}
}

func TestRemoveFind(t *testing.T) {
	tbl := &Table{}
	for _, id := range []ID{0, 1, 2, 3, 4, 5, 6, 1, 2} {
		tbl.Records = append(tbl.Records, &Record{
			PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: id,
		})
	}
	n := tbl.Remove(IDFamily, IDSubfamily, IDFullName, IDPostScriptName)
	if n != 6 {
		t.Errorf("removed %d records, expected 6", n)
	}
	var got []ID
	for _, rec := range tbl.Records {
		got = append(got, rec.NameID)
	}
	if d := cmp.Diff([]ID{0, 3, 5}, got); d != "" {
		t.Error(d)
	}
	if len(tbl.Find(IDFamily)) != 0 {
		t.Error("family records left")
	}
	if len(tbl.Find(IDVersion)) != 1 {
		t.Error("version record missing")
	}
}

func TestTooLarge(t *testing.T) {
	tbl := &Table{
		Records: []*Record{
			{PlatformID: 3, EncodingID: 1, NameID: 1, Value: bytes.Repeat([]byte{0, 'a'}, 40000)},
		},
	}
	_, err := tbl.Encode()
	var tableErr *fonterror.TableAccessError
	if !errors.As(err, &tableErr) {
		t.Errorf("expected TableAccessError, got %v", err)
	}
}

func FuzzNames(f *testing.F) {
	tbl := &Table{
		Records: []*Record{
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 1, Value: []byte("Go")},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 1, Value: EncodeUTF16BE("Go")},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 2, Value: EncodeUTF16BE("Regular")},
		},
	}
	data, err := tbl.Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(data)

	f.Fuzz(func(t *testing.T, data []byte) {
		t1, err := Decode(data)
		if err != nil {
			return
		}
		data2, err := t1.Encode()
		if err != nil {
			// shared strings in the input can make the output too large
			return
		}
		t2, err := Decode(data2)
		if err != nil {
			t.Fatal(err)
		}
		data3, err := t2.Encode()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data2, data3) {
			t.Error("encoding is not stable")
		}
	})
}
