// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/qvdata/internal/catalog"
	"github.com/ManuGH/qvdata/internal/persistence/sqlite"
)

// errIntegrity reports a damaged catalog; the diagnostics are already printed.
var errIntegrity = errors.New("catalog integrity check failed")

func (a *app) runCatalog(args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printCatalogUsage(a.stdout)
		return nil
	}

	switch args[0] {
	case "scan":
		return a.runCatalogScan(args[1:])
	case "list":
		return a.runCatalogList(args[1:])
	case "verify":
		return a.runCatalogVerify(args[1:])
	case "watch":
		return a.runCatalogWatch(args[1:])
	default:
		printCatalogUsage(a.stderr)
		return usagef("unknown catalog subcommand: %s", args[0])
	}
}

func printCatalogUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  qvdata catalog scan   [--db FILE] [--data DIR] [--recursive]")
	fmt.Fprintln(w, "  qvdata catalog list   [--db FILE] [--machine M] [--qubits N] [--status ok|invalid] [--format table|json|yaml]")
	fmt.Fprintln(w, "  qvdata catalog verify [--db FILE] [--mode quick|full]")
	fmt.Fprintln(w, "  qvdata catalog watch  [--db FILE] [--data DIR] [--recursive]")
}

func (a *app) openStore(path string) (*catalog.Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, usagef("--db is required (catalogPath is not configured)")
	}
	return catalog.NewStore(path)
}

func (a *app) printScan(sc *catalog.Scan) {
	a.p.Fprintf(a.stdout, "scan %s: %s, %d files (%d ok, %d invalid, %d removed)\n",
		sc.ID, sc.Status, sc.Total, sc.OK, sc.Invalid, sc.Removed)
}

func (a *app) runCatalogScan(args []string) error {
	fs := a.newFlagSet("catalog scan")
	db := fs.String("db", a.cfg.CatalogPath, "catalog database file")
	data := fs.String("data", a.cfg.DataDir, "dataset root directory")
	recursive := fs.Bool("recursive", a.cfg.Recursive, "descend into subdirectories")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store, err := a.openStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	sc, err := catalog.NewScanner(store, catalog.ScanOptions{Recursive: *recursive}).
		Scan(context.Background(), *data)
	if err != nil {
		return err
	}
	a.printScan(sc)
	return nil
}

func (a *app) runCatalogList(args []string) error {
	fs := a.newFlagSet("catalog list")
	db := fs.String("db", a.cfg.CatalogPath, "catalog database file")
	machine := fs.String("machine", "", "machine name")
	qubits := fs.Int("qubits", 0, "qubit count")
	status := fs.String("status", "", "ok or invalid")
	format := fs.String("format", "table", "output format: table, json or yaml")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	filter := catalog.Filter{Machine: *machine, NumQubits: *qubits}
	switch catalog.EntryStatus(*status) {
	case "":
	case catalog.EntryStatusOK, catalog.EntryStatusInvalid:
		filter.Status = catalog.EntryStatus(*status)
	default:
		return usagef("invalid --status %q (want ok or invalid)", *status)
	}

	store, err := a.openStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}

	switch strings.ToLower(*format) {
	case "table":
		tw := a.table()
		fmt.Fprintln(tw, "PATH\tEXPERIMENT\tNQUBITS\tTRIALS\tSHOTS\tSTATUS\tERROR")
		for _, e := range entries {
			a.p.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
				e.RelPath, e.Experiment, e.NumQubits, e.Trials, e.Shots, e.Status, e.LastError)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml", "yml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return usagef("unsupported format: %s (use table, json or yaml)", *format)
	}
}

func (a *app) runCatalogVerify(args []string) error {
	fs := a.newFlagSet("catalog verify")
	db := fs.String("db", a.cfg.CatalogPath, "catalog database file")
	modeName := fs.String("mode", "quick", "quick or full")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	mode, err := sqlite.ParseVerifyMode(*modeName)
	if err != nil {
		return usageError{msg: err.Error()}
	}

	issues, err := catalog.Verify(*db, mode)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintln(a.stdout, issue)
		}
		return errIntegrity
	}
	fmt.Fprintf(a.stdout, "✓ %s is healthy (%s check)\n", *db, mode)
	return nil
}

func (a *app) runCatalogWatch(args []string) error {
	fs := a.newFlagSet("catalog watch")
	db := fs.String("db", a.cfg.CatalogPath, "catalog database file")
	data := fs.String("data", a.cfg.DataDir, "dataset root directory")
	recursive := fs.Bool("recursive", a.cfg.Recursive, "descend into subdirectories")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store, err := a.openStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scanner := catalog.NewScanner(store, catalog.ScanOptions{Recursive: *recursive})
	w := catalog.NewWatcher(scanner, *data, catalog.WatchOptions{
		Interval:  a.cfg.Watch.Interval,
		Debounce:  a.cfg.Watch.Debounce,
		Recursive: *recursive,
		OnScan: func(sc *catalog.Scan, err error) {
			if err != nil {
				fmt.Fprintf(a.stderr, "Error: %v\n", err)
				return
			}
			a.printScan(sc)
		},
	})
	return w.Run(ctx)
}
