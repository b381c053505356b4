// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"github.com/ManuGH/qvdata/internal/export"
)

// runExport writes a flat table of the selected files. "-o -" writes to stdout.
func (a *app) runExport(args []string) error {
	fs := a.newFlagSet("export")
	var src sourceFlags
	src.register(fs, a)
	tableName := fs.String("table", a.cfg.Export.Table, "table: trials or counts")
	formatName := fs.String("format", a.cfg.Export.Format, "format: csv, json or yaml")
	var output string
	fs.StringVar(&output, "output", "", "output file, - for stdout (required)")
	fs.StringVar(&output, "o", "", "output file (shorthand)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	table, err := export.ParseTable(*tableName)
	if err != nil {
		return usageError{msg: err.Error()}
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return usageError{msg: err.Error()}
	}
	if output == "" {
		return usagef("--output is required")
	}

	files, err := src.load(fs.Args())
	if err != nil {
		return err
	}

	if output == "-" {
		return export.Write(a.stdout, table, format, files)
	}
	if err := export.WriteFile(output, table, format, files); err != nil {
		return err
	}
	a.p.Fprintf(a.stdout, "wrote %s table for %d files to %s\n", table, len(files), output)
	return nil
}
