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
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontfix/fonterror"
	"seehuhn.de/go/fontfix/naming"
)

// OutputPath returns the name of the file File writes for the given input:
// the input name with the extension replaced by the extension of target.
func OutputPath(path string, target Target) string {
	dir, fname := filepath.Split(path)
	base, _ := naming.SplitExt(fname)
	return filepath.Join(dir, base+target.Ext())
}

// File converts the font file at path and writes the result next to the
// input, see OutputPath.  If the output file name equals the input file
// name, the input is replaced.
//
// Errors are not returned but logged, together with a stack trace.  On
// success, the name of the output file and true are returned.  On failure,
// no output file is written and the function returns "" and false.
func File(path string, target Target, log logrus.FieldLogger) (outPath string, ok bool) {
	log = log.WithFields(logrus.Fields{
		"file":   filepath.Base(path),
		"target": target.String(),
	})

	defer func() {
		if r := recover(); r != nil {
			err, isErr := r.(error)
			if !isErr {
				err = fmt.Errorf("%v", r)
			}
			logFailure(log, &fonterror.UnexpectedError{Err: err, Stack: debug.Stack()})
			outPath, ok = "", false
		}
	}()

	log.Info("loading")
	data, err := os.ReadFile(path)
	if err != nil {
		logFailure(log, &fonterror.LoadError{Reason: "cannot read file", Err: err})
		return "", false
	}

	res, err := Convert(data, filepath.Base(path), target)
	if err != nil {
		logFailure(log, err)
		return "", false
	}
	if res.Renamed {
		log.WithFields(logrus.Fields{
			"old":    res.Family,
			"family": res.Identity.Family,
			"style":  res.Identity.Style,
		}).Info("detected garbage internal names, using names inferred from the file name")
	}
	if res.Sanitized != nil {
		log.Debugf("sanitized: %s", res.Sanitized)
	}

	outPath = OutputPath(path, target)
	log.WithField("output", outPath).Info("saving")
	err = writeAtomic(outPath, res.Data)
	if err != nil {
		logFailure(log, &fonterror.SaveError{Path: outPath, Err: err})
		return "", false
	}
	log.WithField("output", outPath).Info("done")
	return outPath, true
}

// logFailure logs err, classified by the error types of package
// fonterror, together with a stack trace.
func logFailure(log logrus.FieldLogger, err error) {
	err = fonterror.Classify(err)
	stack := debug.Stack()
	if unexpected, ok := err.(*fonterror.UnexpectedError); ok && unexpected.Stack != nil {
		stack = unexpected.Stack
	}
	log.WithError(err).
		WithField("kind", fmt.Sprintf("%T", err)).
		WithField("stack", string(stack)).
		Error("conversion failed")
}

// writeAtomic writes data to a temporary file in the directory of path,
// and then renames the temporary file to path.  If any step fails, the
// temporary file is removed.
func writeAtomic(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	if err != nil {
		return err
	}
	err = tmp.Sync()
	if err != nil {
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmp.Name(), 0o644)
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
