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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/fontfix/internal/testfont"
)

func writeDamaged(t *testing.T, dir, fname string) string {
	t.Helper()
	data, err := testfont.Damaged().Bytes()
	require.NoError(t, err)
	path := filepath.Join(dir, fname)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestConvert(t *testing.T) {
	in := t.TempDir()
	dest := t.TempDir()
	path := writeDamaged(t, in, "costa-bold.ttf")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	status := run([]string{"-to", "woff", "-out", dest, path}, stdout, stderr, false)
	require.Equal(t, 0, status, stderr.String())

	want := filepath.Join(dest, "costa-bold.woff")
	assert.Equal(t, want+"\n", stdout.String())
	assert.FileExists(t, want)
	assert.Contains(t, stderr.String(), "done")
}

func TestAllFail(t *testing.T) {
	in := t.TempDir()
	path := filepath.Join(in, "broken.ttf")
	require.NoError(t, os.WriteFile(path, []byte("broken"), 0o644))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	status := run([]string{"-out", t.TempDir(), path}, stdout, stderr, false)
	assert.Equal(t, 1, status)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Conversion failed.")
}

func TestInfo(t *testing.T) {
	path := writeDamaged(t, t.TempDir(), "costa-bold.ttf")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	status := run([]string{"-info", path}, stdout, stderr, false)
	require.Equal(t, 0, status, stderr.String())
	assert.Contains(t, stdout.String(), `family: "." (garbage)`)
	assert.Contains(t, stdout.String(), `"DSIG"`)
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	require.NoError(t, os.WriteFile(path, testfont.GoRegular(), 0o644))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	status := run([]string{"-verify", path}, stdout, stderr, false)
	require.Equal(t, 0, status, stderr.String())
	assert.Contains(t, stdout.String(), `family "Go"`)
}

func TestUsage(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	assert.Equal(t, 2, run(nil, stdout, stderr, false))
	assert.Contains(t, stderr.String(), "Usage: fontfix")
	assert.Equal(t, 2, run([]string{"-bogus"}, stdout, stderr, false))
}
