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

package batch

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/fontfix/convert"
	"seehuhn.de/go/fontfix/internal/testfont"
	"seehuhn.de/go/fontfix/sfnt"
)

func writeInput(t *testing.T, dir, fname string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, fname)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func damagedFont(t *testing.T) []byte {
	t.Helper()
	data, err := testfont.Damaged().Bytes()
	require.NoError(t, err)
	return data
}

func fixedClock() time.Time {
	return time.Unix(1700000000, 0)
}

func TestSingleFile(t *testing.T) {
	in := t.TempDir()
	dest := t.TempDir()
	path := writeInput(t, in, "costa-bold.ttf", damagedFont(t))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	res, err := Run([]string{path}, &Options{
		Target: convert.WOFF2,
		Dest:   dest,
		Log:    log,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "costa-bold.woff2"), res.Path)
	assert.Equal(t, []string{"costa-bold.woff2"}, res.Outputs)
	assert.Empty(t, res.Failed)

	out, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "wOF2", string(out[:4]))

	// the input is left alone
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMultipleFiles(t *testing.T) {
	in := t.TempDir()
	dest := t.TempDir()
	data := damagedFont(t)
	paths := []string{
		writeInput(t, in, "costa-bold.ttf", data),
		writeInput(t, in, "costa-italic.ttf", data),
	}

	log, _ := test.NewNullLogger()
	res, err := Run(paths, &Options{
		Target: convert.TTF,
		Dest:   dest,
		Log:    log,
		Now:    fixedClock,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "converted_fonts_1700000000.zip"), res.Path)
	assert.Equal(t, []string{"costa-bold.ttf", "costa-italic.ttf"}, res.Outputs)

	zr, err := zip.OpenReader(res.Path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)

		r, err := f.Open()
		require.NoError(t, err)
		buf := make([]byte, 4)
		_, err = io.ReadFull(r, buf)
		r.Close()
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 0, 0}, buf, f.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"costa-bold.ttf", "costa-italic.ttf"}, names)
}

func TestDuplicateNames(t *testing.T) {
	in1 := t.TempDir()
	in2 := t.TempDir()
	dest := t.TempDir()
	data := damagedFont(t)
	paths := []string{
		writeInput(t, in1, "font.ttf", data),
		writeInput(t, in2, "font.ttf", data),
	}

	log, _ := test.NewNullLogger()
	res, err := Run(paths, &Options{
		Target: convert.WOFF,
		Dest:   dest,
		Log:    log,
		Now:    fixedClock,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"font.woff", "font-2.woff"}, res.Outputs)
}

func TestForcedZip(t *testing.T) {
	in := t.TempDir()
	dest := t.TempDir()
	path := writeInput(t, in, "costa-bold.ttf", damagedFont(t))

	log, _ := test.NewNullLogger()
	res, err := Run([]string{path}, &Options{
		Target: convert.TTF,
		Dest:   dest,
		Zip:    true,
		Log:    log,
		Now:    fixedClock,
	})
	require.NoError(t, err)
	assert.Equal(t, "converted_fonts_1700000000.zip", filepath.Base(res.Path))

	zr, err := zip.OpenReader(res.Path)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "costa-bold.ttf", zr.File[0].Name)
}

func TestPartialFailure(t *testing.T) {
	in := t.TempDir()
	dest := t.TempDir()
	good := writeInput(t, in, "costa-bold.ttf", damagedFont(t))
	bad := writeInput(t, in, "broken.ttf", []byte("not a font at all"))

	log, hook := test.NewNullLogger()
	res, err := Run([]string{bad, good}, &Options{
		Target: convert.TTF,
		Dest:   dest,
		Log:    log,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{bad}, res.Failed)
	assert.Equal(t, []string{"costa-bold.ttf"}, res.Outputs)
	assert.Equal(t, filepath.Join(dest, "costa-bold.ttf"), res.Path)

	failed := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == "conversion failed" {
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	out, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	_, err = sfnt.Read(out)
	assert.NoError(t, err)
}

func TestAllFailed(t *testing.T) {
	in := t.TempDir()
	dest := t.TempDir()
	paths := []string{
		writeInput(t, in, "a.ttf", []byte("garbage")),
		filepath.Join(in, "missing.ttf"),
	}

	log, _ := test.NewNullLogger()
	res, err := Run(paths, &Options{
		Target: convert.TTF,
		Dest:   dest,
		Log:    log,
	})
	assert.ErrorIs(t, err, ErrAllFailed)
	assert.Equal(t, paths, res.Failed)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUniqueName(t *testing.T) {
	used := map[string]bool{"a.ttf": true, "a-2.ttf": true}
	assert.Equal(t, "b.ttf", uniqueName("b.ttf", used))
	assert.Equal(t, "a-3.ttf", uniqueName("a.ttf", used))
}
