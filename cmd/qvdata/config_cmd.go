// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/qvdata/internal/config"
	"github.com/ManuGH/qvdata/internal/version"
)

func runConfigCLI(args []string, globalPath string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stdout)
		return exitOK
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], globalPath, stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], globalPath, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return exitUsage
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  qvdata config validate [--file|-f config.yaml]")
	fmt.Fprintln(w, "  qvdata config dump [--file|-f config.yaml] [--format=yaml|json]")
}

func configFlagSet(name string, stderr io.Writer, file *string, globalPath string) *flag.FlagSet {
	fs := flag.NewFlagSet("qvdata config "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(file, "file", globalPath, "path to YAML configuration file")
	fs.StringVar(file, "f", globalPath, "path to YAML configuration file (shorthand)")
	return fs
}

func runConfigValidate(args []string, globalPath string, stdout, stderr io.Writer) int {
	var file string
	fs := configFlagSet("validate", stderr, &file, globalPath)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	configPath := strings.TrimSpace(file)
	if configPath == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		return exitUsage
	}

	if _, err := config.NewLoader(configPath, version.Version).Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", configPath, err)
		return exitFailure
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", configPath)
	return exitOK
}

// runConfigDump prints the effective configuration (defaults + file + env).
func runConfigDump(args []string, globalPath string, stdout, stderr io.Writer) int {
	var file, format string
	fs := configFlagSet("dump", stderr, &file, globalPath)
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	configPath := strings.TrimSpace(file)
	cfg, err := config.NewLoader(configPath, version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n  %v\n", err)
		return exitFailure
	}

	fileCfg := config.ToFileConfig(cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return exitFailure
		}
		_ = enc.Close()
		return exitOK
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return exitFailure
		}
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return exitUsage
	}
}
