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

package inspect

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontfix/container"
	"seehuhn.de/go/fontfix/convert"
	"seehuhn.de/go/fontfix/fonterror"
	"seehuhn.de/go/fontfix/internal/testfont"
	"seehuhn.de/go/fontfix/sfnt"
	"seehuhn.de/go/fontfix/sfnt/os2"
)

func TestSniff(t *testing.T) {
	doc := testfont.GoRegularDocument()
	raw, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	h, err := Sniff(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := &Header{
		Flavor:     sfnt.FlavorRaw,
		ScalerType: sfnt.ScalerTypeTrueType,
		NumTables:  len(doc.Tables),
	}
	if d := cmp.Diff(want, h); d != "" {
		t.Error(d)
	}

	for _, flavor := range []sfnt.Flavor{sfnt.FlavorWOFF, sfnt.FlavorWOFF2} {
		doc.Flavor = flavor
		data, err := container.Encode(doc)
		if err != nil {
			t.Fatal(err)
		}
		h, err := Sniff(data)
		if err != nil {
			t.Fatal(err)
		}
		if h.Flavor != flavor || h.NumTables != len(doc.Tables) {
			t.Errorf("%s: wrong header %+v", flavor, h)
		}
		if h.Length != uint32(len(data)) || h.TotalSfntSize != uint32(len(raw)) {
			t.Errorf("%s: wrong sizes %+v", flavor, h)
		}
		if (h.CompressedSize != 0) != (flavor == sfnt.FlavorWOFF2) {
			t.Errorf("%s: compressed size %d", flavor, h.CompressedSize)
		}
	}

	_, err = Sniff([]byte("wOFF\x00\x01\x00\x00"))
	var loadErr *fonterror.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("truncated header: %v", err)
	}
}

func TestDescribe(t *testing.T) {
	data, err := testfont.Damaged().Bytes()
	if err != nil {
		t.Fatal(err)
	}
	r, err := Describe(data)
	if err != nil {
		t.Fatal(err)
	}
	if r.Family != "." || !r.IsGarbage {
		t.Errorf("family %q, garbage %t", r.Family, r.IsGarbage)
	}
	if r.Embedding == nil || r.Embedding.Use != os2.PermRestricted {
		t.Errorf("embedding %+v", r.Embedding)
	}
	if len(r.Names) != 9 {
		t.Errorf("%d names", len(r.Names))
	}
	found := false
	for _, tag := range r.Junk {
		if tag == sfnt.TagDSIG {
			found = true
		}
	}
	if !found {
		t.Errorf("DSIG not listed in %q", r.Junk)
	}

	buf := &bytes.Buffer{}
	err = r.Format(buf)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`family: "." (garbage)`, "restricted", `"DSIG"`} {
		if !strings.Contains(out, want) {
			t.Errorf("%q missing from report:\n%s", want, out)
		}
	}
}

func TestDescribeGood(t *testing.T) {
	data, err := testfont.GoRegularDocument().Bytes()
	if err != nil {
		t.Fatal(err)
	}
	r, err := Describe(data)
	if err != nil {
		t.Fatal(err)
	}
	if r.Family != "Go" || r.IsGarbage || r.IsCFF {
		t.Errorf("unexpected report %+v", r)
	}
	for _, info := range r.Tables {
		if info.BadChecksum {
			t.Errorf("%q: bad checksum", info.Tag)
		}
	}
}

func TestDescribeBadChecksum(t *testing.T) {
	data, err := testfont.GoRegularDocument().Bytes()
	if err != nil {
		t.Fatal(err)
	}
	_, records, err := sfnt.ReadDirectory(data)
	if err != nil {
		t.Fatal(err)
	}
	var corrupted string
	for _, rec := range records {
		if rec.Tag == sfnt.TagName {
			// modify the last byte of the string storage
			data[rec.Offset+rec.Length-1] ^= 0x01
			corrupted = rec.Tag
		}
	}
	if corrupted == "" {
		t.Fatal("no name table")
	}

	r, err := Describe(data)
	if err != nil {
		t.Fatal(err)
	}
	for _, info := range r.Tables {
		if info.BadChecksum != (info.Tag == corrupted) {
			t.Errorf("%q: BadChecksum = %t", info.Tag, info.BadChecksum)
		}
	}

	buf := &bytes.Buffer{}
	err = r.Format(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"name"`) || !strings.Contains(buf.String(), "(bad checksum)") {
		t.Errorf("checksum problem not reported:\n%s", buf.String())
	}
}

func TestVerify(t *testing.T) {
	data, err := testfont.Damaged().Bytes()
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range []convert.Target{convert.TTF, convert.WOFF2} {
		res, err := convert.Convert(data, "costa-bold.ttf", target)
		if err != nil {
			t.Fatal(err)
		}
		v, err := Verify(res.Data)
		if err != nil {
			t.Fatal(err)
		}

		wantFamily := "Costa"
		if !target.IsDesktop() {
			wantFamily = "."
		}
		if v.Family != wantFamily {
			t.Errorf("%s: family %q, want %q", target, v.Family, wantFamily)
		}
		if !v.IsGlyf || v.NumGlyphs == 0 {
			t.Errorf("%s: unexpected result %+v", target, v)
		}
	}
}
