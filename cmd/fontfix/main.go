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

// Fontfix repairs font files with broken internal names and converts them
// between the TrueType, OpenType, WOFF and WOFF2 formats.
//
// Usage:
//
//	fontfix [options] font-file...
//
// The converted fonts are placed in ~/Downloads, unless a different
// directory is given using the -out flag.  If more than one font is
// converted, the results are bundled into a ZIP archive.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"seehuhn.de/go/fontfix/batch"
	"seehuhn.de/go/fontfix/convert"
	"seehuhn.de/go/fontfix/inspect"
)

func main() {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, isTerminal))
}

func run(args []string, stdout, stderr io.Writer, color bool) int {
	flags := flag.NewFlagSet("fontfix", flag.ContinueOnError)
	flags.SetOutput(stderr)
	to := flags.String("to", "ttf", "output format: ttf, otf, woff or woff2")
	out := flags.String("out", "", "output directory (default ~/Downloads)")
	forceZip := flags.Bool("zip", false, "always create a ZIP archive")
	info := flags.Bool("info", false, "describe the fonts, do not convert")
	verify := flags.Bool("verify", false, "check that the fonts can be parsed, do not convert")
	verbose := flags.Bool("v", false, "show debug messages")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fontfix [options] font-file...\n\n")
		flags.PrintDefaults()
	}
	err := flags.Parse(args)
	if err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	switch {
	case *info:
		return forEach(flags.Args(), stdout, stderr, describe)
	case *verify:
		return forEach(flags.Args(), stdout, stderr, verifyFont)
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&nested.Formatter{
		FieldsOrder: []string{"file", "target", "output"},
		HideKeys:    false,
		NoColors:    !color,
	})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	res, err := batch.Run(flags.Args(), &batch.Options{
		Target: convert.ParseTarget(*to),
		Dest:   *out,
		Zip:    *forceZip,
		Log:    log,
	})
	if errors.Is(err, batch.ErrAllFailed) {
		fmt.Fprintln(stderr, "Conversion failed.")
		return 1
	} else if err != nil {
		fmt.Fprintln(stderr, "fontfix:", err)
		return 1
	}

	fmt.Fprintln(stdout, res.Path)
	if len(res.Failed) > 0 {
		fmt.Fprintf(stderr, "%d of %d files could not be converted\n",
			len(res.Failed), len(res.Failed)+len(res.Outputs))
		return 1
	}
	return 0
}

func forEach(paths []string, stdout, stderr io.Writer, fn func(io.Writer, []byte) error) int {
	status := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err == nil {
			fmt.Fprintf(stdout, "%s:\n", path)
			err = fn(stdout, data)
		}
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			status = 1
		}
	}
	return status
}

func describe(w io.Writer, data []byte) error {
	r, err := inspect.Describe(data)
	if err != nil {
		return err
	}
	return r.Format(w)
}

func verifyFont(w io.Writer, data []byte) error {
	v, err := inspect.Verify(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  family %q, PostScript name %q, %d glyphs\n",
		v.Family, v.PostScriptName, v.NumGlyphs)
	return err
}
