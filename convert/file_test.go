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
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"seehuhn.de/go/fontfix/internal/testfont"
	"seehuhn.de/go/fontfix/sfnt"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		in     string
		target Target
		want   string
	}{
		{"/tmp/x/costa-bold.woff2", TTF, "/tmp/x/costa-bold.ttf"},
		{"/tmp/x/costa-bold.ttf", TTF, "/tmp/x/costa-bold.ttf"},
		{"font.tar.gz", WOFF, "font.tar.woff"},
		{"dir/.hidden", OTF, "dir/.hidden.otf"},
		{"plain", WOFF2, "plain.woff2"},
	}
	for _, c := range cases {
		got := OutputPath(filepath.FromSlash(c.in), c.target)
		if got != filepath.FromSlash(c.want) {
			t.Errorf("OutputPath(%q, %s) = %q, want %q", c.in, c.target, got, c.want)
		}
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	data, err := testfont.Damaged().Bytes()
	if err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "costa-bold.woff")
	err = os.WriteFile(in, data, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	log, hook := test.NewNullLogger()
	out, ok := File(in, TTF, log)
	if !ok {
		for _, entry := range hook.AllEntries() {
			t.Log(entry.Message, entry.Data)
		}
		t.Fatal("conversion failed")
	}
	if out != filepath.Join(dir, "costa-bold.ttf") {
		t.Errorf("wrong output path %q", out)
	}

	outData, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := sfnt.Read(outData)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Has(sfnt.TagDSIG) {
		t.Error("DSIG not removed")
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "done" || last.Data["output"] != out {
		t.Errorf("unexpected last log entry %+v", last)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("%d files in output directory, want 2", len(entries))
	}
}

func TestFileReplacesInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Go-Regular.ttf")
	err := os.WriteFile(in, testfont.GoRegular(), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	log, _ := test.NewNullLogger()
	out, ok := File(in, TTF, log)
	if !ok || out != in {
		t.Fatalf("got %q, %t", out, ok)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d files in output directory, want 1", len(entries))
	}
}

func TestFileFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.ttf")
	err := os.WriteFile(in, []byte("wOF2 but not really a font"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	log, hook := test.NewNullLogger()
	out, ok := File(in, WOFF, log)
	if ok || out != "" {
		t.Errorf("got %q, %t", out, ok)
	}

	last := hook.LastEntry()
	if last == nil || last.Level != logrus.ErrorLevel {
		t.Fatalf("failure not logged: %+v", last)
	}
	if last.Data["stack"] == "" || last.Data[logrus.ErrorKey] == nil {
		t.Errorf("incomplete log entry %+v", last.Data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d files in output directory, want 1", len(entries))
	}

	_, ok = File(filepath.Join(dir, "missing.ttf"), TTF, log)
	if ok {
		t.Error("missing input file not detected")
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")

	err := writeAtomic(target, []byte("first"))
	if err != nil {
		t.Fatal(err)
	}
	err = writeAtomic(target, []byte("second"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("got %q", data)
	}

	err = writeAtomic(filepath.Join(dir, "missing", "out.bin"), []byte("x"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d files in directory, want 1", len(entries))
	}
}
