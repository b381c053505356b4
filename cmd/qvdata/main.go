// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// qvdata reads quantum volume dataset files and indexes, summarizes and
// exports them.
//
// Usage:
//
//	qvdata [--config FILE] [--metrics-file FILE] <command> [flags] [args]
//
// Exit codes:
//   - 0: success
//   - 1: the command failed (missing file, schema mismatch, invalid config)
//   - 2: usage error
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ManuGH/qvdata/internal/config"
	xglog "github.com/ManuGH/qvdata/internal/log"
	"github.com/ManuGH/qvdata/internal/metrics"
	"github.com/ManuGH/qvdata/internal/version"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by how the command was invoked.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// app is the state shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    config.AppConfig
	p      *message.Printer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qvdata", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	var configPath, metricsFile string
	fs.StringVar(&configPath, "config", "", "path to YAML configuration file")
	fs.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	case "version":
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}

	// Safe defaults until the configuration is known.
	xglog.Configure(xglog.Config{Output: stderr, Version: version.Version})

	if cmd == "config" {
		// config validate/dump report configuration errors themselves.
		return runConfigCLI(cmdArgs, configPath, stdout, stderr)
	}

	cfg, err := config.NewLoader(strings.TrimSpace(configPath), version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n  %v\n", err)
		return exitFailure
	}
	xglog.Configure(xglog.Config{Level: cfg.LogLevel, Output: stderr, Version: version.Version})

	a := &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		p:      message.NewPrinter(language.English),
	}

	code := a.dispatch(cmd, cmdArgs)

	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			xglog.L().Error().Err(err).Str(xglog.FieldPath, metricsFile).Msg("metrics textfile not written")
			fmt.Fprintf(stderr, "Error: %v\n", err)
			if code == exitOK {
				code = exitFailure
			}
		}
	}
	return code
}

func (a *app) dispatch(cmd string, args []string) int {
	var err error
	switch cmd {
	case "load":
		err = a.runLoad(args)
	case "show":
		err = a.runShow(args)
	case "gates":
		err = a.runGates(args)
	case "export":
		err = a.runExport(args)
	case "catalog":
		err = a.runCatalog(args)
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", cmd)
		printUsage(a.stderr)
		return exitUsage
	}
	return a.exitCode(err)
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}
	if errors.Is(err, errFlagParse) {
		return exitUsage
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return exitFailure
}

// errFlagParse is returned after the flag package already printed the problem.
var errFlagParse = errors.New("flag parse error")

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("qvdata "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errFlagParse
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  qvdata [--config FILE] [--metrics-file FILE] <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  load     [--data DIR] [--machine M] [--qubits N] [--recursive] [PATH]")
	fmt.Fprintln(w, "  show     --machine M --qubits N [--data DIR] [--hex]")
	fmt.Fprintln(w, "  gates    [--data DIR] [--machine M] [--qubits N] [PATH]")
	fmt.Fprintln(w, "  export   [--table trials|counts] [--format csv|json|yaml] -o FILE [PATH]")
	fmt.Fprintln(w, "  catalog  scan|list|verify|watch")
	fmt.Fprintln(w, "  config   validate|dump")
	fmt.Fprintln(w, "  version")
}
