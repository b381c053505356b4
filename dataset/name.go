// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// FileSuffix terminates every dataset file name.
const FileSuffix = "_raw_results.json"

var nameRe = regexp.MustCompile(`^n([0-9]+)_(.+)` + regexp.QuoteMeta(FileSuffix) + `$`)

// Name identifies one experiment: a qubit count measured on a machine.
type Name struct {
	NumQubits int
	Machine   string
}

// ParseName parses a dataset file name (a base name or a path).
func ParseName(filename string) (Name, error) {
	base := filepath.Base(filename)
	m := nameRe.FindStringSubmatch(base)
	if m == nil {
		return Name{}, fmt.Errorf("%w: %q", ErrInvalidName, base)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return Name{}, fmt.Errorf("%w: %q: qubit count must be positive", ErrInvalidName, base)
	}
	return Name{NumQubits: n, Machine: m[2]}, nil
}

// IsDatasetFile reports whether filename follows the naming convention.
func IsDatasetFile(filename string) bool {
	_, err := ParseName(filename)
	return err == nil
}

// Valid reports whether the name can be rendered into a file name.
func (n Name) Valid() bool {
	return n.NumQubits > 0 && n.Machine != "" && filepath.Base(n.Machine) == n.Machine
}

// FileName renders the conventional file name, e.g. n12_H1-1_raw_results.json.
func (n Name) FileName() string {
	return fmt.Sprintf("n%d_%s%s", n.NumQubits, n.Machine, FileSuffix)
}

// Experiment returns the experiment identifier, e.g. n12_H1-1.
func (n Name) Experiment() string {
	return fmt.Sprintf("n%d_%s", n.NumQubits, n.Machine)
}

// CircuitName returns the circuit label used for trial i, e.g. qv_depth_12_trial_0.
func CircuitName(nqubits, trial int) string {
	return fmt.Sprintf("qv_depth_%d_trial_%d", nqubits, trial)
}
