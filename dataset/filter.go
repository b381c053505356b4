// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset

import "strings"

// Filter selects dataset files during directory loads. The zero value matches
// every file; each non-empty list narrows the selection.
type Filter struct {
	Machines    []string // machine identifiers, case-insensitive
	Qubits      []int
	Experiments []string // e.g. "n12_H1-1"
	Recursive   bool     // descend into subdirectories of the root
}

// Match reports whether a dataset name passes the filter.
func (f Filter) Match(n Name) bool {
	if len(f.Machines) > 0 && !containsFold(f.Machines, n.Machine) {
		return false
	}
	if len(f.Qubits) > 0 && !containsInt(f.Qubits, n.NumQubits) {
		return false
	}
	if len(f.Experiments) > 0 && !containsFold(f.Experiments, n.Experiment()) {
		return false
	}
	return true
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}
