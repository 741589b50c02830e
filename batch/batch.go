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

// Package batch converts a group of font files and delivers the results to
// a destination directory.
//
// A single converted font is copied to the destination as is.  Several
// converted fonts are bundled into one ZIP archive.
package batch

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/flopp/go-findfont"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontfix/convert"
	"seehuhn.de/go/fontfix/naming"
)

// Options control the behaviour of Run.
type Options struct {
	Target convert.Target

	// Dest is the directory where the results are placed.
	// If this is empty, ~/Downloads is used.
	Dest string

	// Zip forces the results into a ZIP archive, even if only one file
	// was converted.
	Zip bool

	// Log receives progress messages.  If this is nil, the standard
	// logrus logger is used.
	Log logrus.FieldLogger

	// Now is used to name ZIP archives.  If this is nil, time.Now is used.
	Now func() time.Time
}

// Summary describes the result of Run.
type Summary struct {
	// Path is the file placed in the destination directory: either a
	// converted font or a ZIP archive.
	Path string

	// Outputs lists the file names of the converted fonts.
	Outputs []string

	// Failed lists the input files which could not be converted.
	Failed []string
}

// ErrAllFailed is returned by Run if none of the files could be converted.
var ErrAllFailed = errors.New("conversion failed")

// Run converts the given font files.
//
// The inputs are first copied into a private temporary directory, so that
// the input files are never modified.  Files are converted one at a time.
// Files which cannot be converted are listed in Summary.Failed and
// otherwise skipped.  If no file can be converted, ErrAllFailed is
// returned.
func Run(paths []string, opts *Options) (*Summary, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	dest := opts.Dest
	if dest == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dest = filepath.Join(home, "Downloads")
	}

	work, err := os.MkdirTemp("", "fontfix-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(work)

	res := &Summary{}
	var converted []string
	for i, path := range paths {
		// Each input gets its own directory, so that inputs with the same
		// base name do not overwrite each other.
		dir := filepath.Join(work, strconv.Itoa(i))
		err := os.Mkdir(dir, 0o700)
		if err != nil {
			return nil, err
		}
		local := filepath.Join(dir, filepath.Base(path))
		err = copyFile(local, path)
		if err != nil {
			log.WithError(err).WithField("file", path).Error("cannot read input")
			res.Failed = append(res.Failed, path)
			continue
		}

		out, ok := convert.File(local, opts.Target, log)
		if !ok {
			res.Failed = append(res.Failed, path)
			continue
		}
		converted = append(converted, out)
		warnInstalled(log, filepath.Base(out))
	}

	if len(converted) == 0 {
		return res, ErrAllFailed
	}

	if len(converted) == 1 && !opts.Zip {
		name := filepath.Base(converted[0])
		res.Path = filepath.Join(dest, name)
		res.Outputs = []string{name}
		err = copyFile(res.Path, converted[0])
		if err != nil {
			return nil, err
		}
		log.WithField("output", res.Path).Info("saved")
		return res, nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	zipName := fmt.Sprintf("converted_fonts_%d.zip", now().Unix())
	res.Path = filepath.Join(dest, zipName)
	res.Outputs, err = writeZip(res.Path, converted)
	if err != nil {
		return nil, err
	}
	log.WithField("output", res.Path).WithField("count", len(converted)).Info("saved archive")
	return res, nil
}

// warnInstalled logs a warning if a font file with the given name is
// already installed on the system.  Installing the converted font would
// then replace or shadow the existing one.
func warnInstalled(log logrus.FieldLogger, fname string) {
	installed, err := findfont.Find(fname)
	if err != nil {
		return
	}
	log.WithField("installed", installed).Warn("a font with this file name is already installed")
}

// writeZip stores the given files in a new ZIP archive.
// If several files have the same base name, a counter is appended to the
// later ones.  The names used inside the archive are returned.
func writeZip(zipPath string, files []string) (names []string, err error) {
	fd, err := os.Create(zipPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		closeErr := fd.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(zipPath)
		}
	}()

	zw := zip.NewWriter(fd)
	used := make(map[string]bool)
	for _, file := range files {
		name := uniqueName(filepath.Base(file), used)
		used[name] = true

		err = addToZip(zw, name, file)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return names, nil
}

func addToZip(zw *zip.Writer, name, file string) error {
	src, err := os.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(fi)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	base, ext := naming.SplitExt(name)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if !used[candidate] {
			return candidate
		}
	}
}

// copyFile copies the contents of src into a new file dst.
func copyFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := out.Close()
		if err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
