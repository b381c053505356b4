// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package export flattens loaded dataset files into tables for notebooks and
// spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/qvdata/dataset"
)

// Table names an export table.
type Table string

const (
	TableTrials Table = "trials" // one row per circuit trial
	TableCounts Table = "counts" // one row per distinct outcome of a trial
)

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseTable accepts "trials" or "counts".
func ParseTable(s string) (Table, error) {
	switch t := Table(strings.ToLower(s)); t {
	case TableTrials, TableCounts:
		return t, nil
	}
	return "", fmt.Errorf("unknown table %q (want trials or counts)", s)
}

// ParseFormat accepts "csv", "json" or "yaml" ("yml" is an alias).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want csv, json or yaml)", s)
}

// TrialRow is one row of the trials table.
type TrialRow struct {
	Experiment       string `json:"experiment" yaml:"experiment"`
	Machine          string `json:"machine" yaml:"machine"`
	NumQubits        int    `json:"nqubits" yaml:"nqubits"`
	Trial            int    `json:"trial" yaml:"trial"`
	Circuit          string `json:"circuit" yaml:"circuit"`
	Shots            int    `json:"shots" yaml:"shots"`
	DistinctOutcomes int    `json:"distinct_outcomes" yaml:"distinct_outcomes"`
}

// CountRow is one row of the counts table.
type CountRow struct {
	Experiment string `json:"experiment" yaml:"experiment"`
	Machine    string `json:"machine" yaml:"machine"`
	NumQubits  int    `json:"nqubits" yaml:"nqubits"`
	Trial      int    `json:"trial" yaml:"trial"`
	Outcome    string `json:"outcome" yaml:"outcome"`
	OutcomeHex string `json:"outcome_hex" yaml:"outcome_hex"`
	Count      int    `json:"count" yaml:"count"`
}

var (
	trialHeader = []string{"experiment", "machine", "nqubits", "trial", "circuit", "shots", "distinct_outcomes"}
	countHeader = []string{"experiment", "machine", "nqubits", "trial", "outcome", "outcome_hex", "count"}
)

// TrialRows flattens files into the trials table, in file then trial order.
func TrialRows(files []*dataset.File) []TrialRow {
	rows := make([]TrialRow, 0)
	for _, f := range files {
		for _, r := range f.Records {
			rows = append(rows, TrialRow{
				Experiment:       r.Experiment,
				Machine:          r.Machine,
				NumQubits:        r.NumQubits,
				Trial:            r.Trial,
				Circuit:          r.Circuit,
				Shots:            r.Shots(),
				DistinctOutcomes: len(r.Counts()),
			})
		}
	}
	return rows
}

// CountRows flattens files into the counts table. Outcomes of a trial are
// listed in lexical order.
func CountRows(files []*dataset.File) []CountRow {
	rows := make([]CountRow, 0)
	for _, f := range files {
		for _, r := range f.Records {
			counts := r.Counts()
			for _, o := range r.DistinctOutcomes() {
				rows = append(rows, CountRow{
					Experiment: r.Experiment,
					Machine:    r.Machine,
					NumQubits:  r.NumQubits,
					Trial:      r.Trial,
					Outcome:    o,
					OutcomeHex: dataset.HexOutcome(o),
					Count:      counts[o],
				})
			}
		}
	}
	return rows
}

// Write encodes table for files to w.
func Write(w io.Writer, table Table, format Format, files []*dataset.File) error {
	switch table {
	case TableTrials:
		return encode(w, format, TrialRows(files), trialHeader, trialRecords)
	case TableCounts:
		return encode(w, format, CountRows(files), countHeader, countRecords)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
}

func encode[T any](w io.Writer, format Format, rows []T, header []string, records func([]T) [][]string) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		if err := cw.WriteAll(records(rows)); err != nil {
			return fmt.Errorf("write csv rows: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func trialRecords(rows []TrialRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.Experiment,
			r.Machine,
			strconv.Itoa(r.NumQubits),
			strconv.Itoa(r.Trial),
			r.Circuit,
			strconv.Itoa(r.Shots),
			strconv.Itoa(r.DistinctOutcomes),
		}
	}
	return out
}

func countRecords(rows []CountRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.Experiment,
			r.Machine,
			strconv.Itoa(r.NumQubits),
			strconv.Itoa(r.Trial),
			r.Outcome,
			r.OutcomeHex,
			strconv.Itoa(r.Count),
		}
	}
	return out
}
