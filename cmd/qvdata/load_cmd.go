// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ManuGH/qvdata/dataset"
	"github.com/ManuGH/qvdata/internal/qasm"
)

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
}

// runLoad prints one summary line per experiment file.
func (a *app) runLoad(args []string) error {
	fs := a.newFlagSet("load")
	var src sourceFlags
	src.register(fs, a)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	files, err := src.load(fs.Args())
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintln(tw, "EXPERIMENT\tMACHINE\tNQUBITS\tTRIALS\tSHOTS\tCIRCUITS")
	var trials, shots int
	for _, f := range files {
		circuits := "no"
		if len(f.IdealCircuits()) > 0 {
			circuits = "yes"
		}
		a.p.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			f.Experiment, f.Machine, f.NumQubits, f.Trials(), f.Shots(), circuits)
		trials += f.Trials()
		shots += f.Shots()
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.p.Fprintf(a.stdout, "%d files, %d trials, %d shots\n", len(files), trials, shots)
	return nil
}

// runShow prints the trials of one experiment.
func (a *app) runShow(args []string) error {
	fs := a.newFlagSet("show")
	data := fs.String("data", a.cfg.DataDir, "dataset root directory")
	machine := fs.String("machine", "", "machine name (required)")
	qubits := fs.Int("qubits", 0, "qubit count (required)")
	hex := fs.Bool("hex", false, "print outcomes in hexadecimal")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *machine == "" || *qubits <= 0 {
		return usagef("--machine and --qubits are required")
	}
	if fs.NArg() > 0 {
		return usagef("show takes no arguments")
	}

	f, err := dataset.Open(*data, *machine, *qubits)
	if err != nil {
		return err
	}

	a.p.Fprintf(a.stdout, "experiment: %s\nmachine:    %s\nnqubits:    %d\npath:       %s\nsha256:     %s\n\n",
		f.Experiment, f.Machine, f.NumQubits, f.Path, f.SHA256)

	tw := a.table()
	fmt.Fprintln(tw, "TRIAL\tCIRCUIT\tSHOTS\tDISTINCT\tTOP OUTCOME")
	for _, r := range f.Records {
		top, n := topOutcome(r.Counts())
		if *hex {
			top = dataset.HexOutcome(top)
		}
		a.p.Fprintf(tw, "%d\t%s\t%d\t%d\t%s (%d)\n",
			r.Trial, r.Circuit, r.Shots(), len(r.Counts()), top, n)
	}
	return tw.Flush()
}

// topOutcome returns the most frequent outcome; ties go to the smaller bitstring.
func topOutcome(counts map[string]int) (string, int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, n := "", 0
	for _, k := range keys {
		if counts[k] > n {
			best, n = k, counts[k]
		}
	}
	return best, n
}

// runGates prints gate counts of the ideal circuits, one line per tracked gate.
func (a *app) runGates(args []string) error {
	fs := a.newFlagSet("gates")
	var src sourceFlags
	src.register(fs, a)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	files, err := src.load(fs.Args())
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintln(tw, "EXPERIMENT\tGATE\tCIRCUITS\tTOTAL\tCOUNTS")
	for _, f := range files {
		circuits := f.IdealCircuits()
		if len(circuits) == 0 {
			fmt.Fprintf(tw, "%s\t-\t0\t0\tno ideal circuits\n", f.Experiment)
			continue
		}
		counts, err := qasm.GateCounts(circuits)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Experiment, err)
		}
		for _, gate := range qasm.TrackedGates {
			list := counts[gate]
			total := 0
			parts := make([]string, len(list))
			for i, c := range list {
				total += c
				parts[i] = fmt.Sprint(c)
			}
			a.p.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				f.Experiment, gate, len(list), total, strings.Join(parts, " "))
		}
	}
	return tw.Flush()
}
