// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset

import (
	"math/big"
	"sort"
	"time"
)

// Record is one QV circuit (a row of raw_results) with its measured outcomes.
type Record struct {
	Experiment   string   `json:"experiment"`
	Machine      string   `json:"machine"`
	NumQubits    int      `json:"nqubits"`
	Trial        int      `json:"trial"`
	Circuit      string   `json:"circuit"`
	Outcomes     []string `json:"outcomes"`                // measured bitstrings, in shot order
	IdealCircuit string   `json:"ideal_circuit,omitempty"` // OpenQASM without measurement
}

// Shots returns the number of measured shots.
func (r Record) Shots() int { return len(r.Outcomes) }

// Counts returns the outcome histogram (bitstring -> occurrences).
func (r Record) Counts() map[string]int {
	counts := make(map[string]int)
	for _, o := range r.Outcomes {
		counts[o]++
	}
	return counts
}

// HexCounts returns the histogram keyed by the hexadecimal value of each
// bitstring ("0x5" for "101").
func (r Record) HexCounts() map[string]int {
	counts := make(map[string]int)
	for o, c := range r.Counts() {
		counts[HexOutcome(o)] += c
	}
	return counts
}

// DistinctOutcomes returns the observed bitstrings in lexical order.
func (r Record) DistinctOutcomes() []string {
	counts := r.Counts()
	out := make([]string, 0, len(counts))
	for o := range counts {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// HexOutcome renders a bitstring as a 0x-prefixed lowercase hex number.
func HexOutcome(bits string) string {
	v, ok := new(big.Int).SetString(bits, 2)
	if !ok {
		return ""
	}
	return "0x" + v.Text(16)
}

// File is the record set loaded from one dataset file.
type File struct {
	Path        string    `json:"path"`
	Machine     string    `json:"machine"`
	NumQubits   int       `json:"nqubits"`
	Experiment  string    `json:"experiment"`
	Size        int64     `json:"size_bytes"`
	ModTime     time.Time `json:"mod_time"`
	SHA256      string    `json:"sha256"`
	// HasCircuits reports whether the file carried qv_circs_nomeas.
	HasCircuits bool      `json:"has_circuits"`
	Records     []Record  `json:"records"`
}

// Name returns the experiment name of the file.
func (f *File) Name() Name {
	return Name{NumQubits: f.NumQubits, Machine: f.Machine}
}

// Trials returns the number of circuits (rows) in the file.
func (f *File) Trials() int { return len(f.Records) }

// Shots returns the total number of shots across all circuits.
func (f *File) Shots() int {
	total := 0
	for _, r := range f.Records {
		total += r.Shots()
	}
	return total
}

// IdealCircuits returns the OpenQASM source of every circuit, or nil when the
// file carries no ideal circuits.
func (f *File) IdealCircuits() []string {
	if !f.HasCircuits || len(f.Records) == 0 {
		return nil
	}
	out := make([]string, len(f.Records))
	for i, r := range f.Records {
		out[i] = r.IdealCircuit
	}
	return out
}
