// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/ManuGH/qvdata/dataset"
	"github.com/ManuGH/qvdata/internal/fsutil"
)

// sourceFlags select which dataset files a command reads.
type sourceFlags struct {
	data      string
	machines  string
	qubits    string
	exps      string
	recursive bool
}

func (s *sourceFlags) register(fs *flag.FlagSet, a *app) {
	fs.StringVar(&s.data, "data", a.cfg.DataDir, "dataset root directory")
	fs.StringVar(&s.machines, "machine", "", "comma-separated machine names")
	fs.StringVar(&s.qubits, "qubits", "", "comma-separated qubit counts")
	fs.StringVar(&s.exps, "experiment", "", "comma-separated experiment ids (e.g. n12_H1-1)")
	fs.BoolVar(&s.recursive, "recursive", a.cfg.Recursive, "descend into subdirectories")
}

func (s *sourceFlags) filter() (dataset.Filter, error) {
	f := dataset.Filter{Recursive: s.recursive, Machines: splitList(s.machines), Experiments: splitList(s.exps)}
	for _, q := range splitList(s.qubits) {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			return f, usagef("invalid --qubits value %q", q)
		}
		f.Qubits = append(f.Qubits, n)
	}
	return f, nil
}

// load reads PATH when given (a file or a directory) and the data root otherwise.
func (s *sourceFlags) load(args []string) ([]*dataset.File, error) {
	if len(args) > 1 {
		return nil, usagef("expected at most one PATH, got %d", len(args))
	}
	filter, err := s.filter()
	if err != nil {
		return nil, err
	}

	root := s.data
	if len(args) == 1 {
		if fsutil.IsRegularFile(args[0]) == nil {
			f, err := dataset.Load(args[0])
			if err != nil {
				return nil, err
			}
			return []*dataset.File{f}, nil
		}
		root = args[0]
	}

	files, err := dataset.LoadDir(root, filter)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files in %s", root)
	}
	return files, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
