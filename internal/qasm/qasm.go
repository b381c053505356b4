// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package qasm reads the OpenQASM 2.0 programs stored alongside QV results
// far enough to count the operations they apply.
package qasm

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// VendorInclude is the hardware-specific include stripped before parsing.
const VendorInclude = `include "hqslib1_dev.inc";`

// TrackedGates are the gates reported by GateCounts.
var TrackedGates = []string{"u1", "u2", "u3", "cx", "cz"}

// ErrSyntax is returned for statements that cannot be split into an operation.
var ErrSyntax = errors.New("qasm syntax error")

// Op is one applied operation, e.g. name "u3" with params "0.1,0.2,0.3" and args ["qr[0]"].
type Op struct {
	Name   string
	Params string
	Args   []string
}

// Circuit is the parsed operation list of one program.
type Circuit struct {
	Version string
	Ops     []Op
}

// declarations carry no operation. A gate definition arrives as one statement
// including its body, so the operations inside it are not counted.
var declarations = map[string]bool{
	"OPENQASM": true,
	"include":  true,
	"qreg":     true,
	"creg":     true,
	"gate":     true,
	"opaque":   true,
}

// Parse splits src into statements and collects the operations.
func Parse(src string) (*Circuit, error) {
	src = strings.ReplaceAll(src, VendorInclude, "")
	c := &Circuit{}

	sc := bufio.NewScanner(strings.NewReader(stripComments(src)))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(splitStatements)

	line := 0
	for sc.Scan() {
		line++
		stmt := strings.TrimSpace(sc.Text())
		if stmt == "" {
			continue
		}
		keyword := firstWord(stmt)
		if keyword == "OPENQASM" {
			c.Version = strings.TrimSpace(strings.TrimPrefix(stmt, "OPENQASM"))
			continue
		}
		if declarations[keyword] {
			continue
		}
		op, err := parseOp(stmt)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", line, err)
		}
		c.Ops = append(c.Ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan program: %w", err)
	}
	return c, nil
}

func parseOp(stmt string) (Op, error) {
	name := stmt
	rest := ""
	if i := wordEnd(stmt); i >= 0 {
		name, rest = stmt[:i], strings.TrimSpace(stmt[i:])
	}
	if name == "" {
		return Op{}, fmt.Errorf("%w: %q", ErrSyntax, stmt)
	}

	op := Op{Name: name}
	if strings.HasPrefix(rest, "(") {
		end := closingParen(rest)
		if end < 0 {
			return Op{}, fmt.Errorf("%w: unbalanced parameters in %q", ErrSyntax, stmt)
		}
		op.Params = strings.TrimSpace(rest[1:end])
		rest = strings.TrimSpace(rest[end+1:])
	}
	// measure q -> c keeps both sides as arguments
	rest = strings.ReplaceAll(rest, "->", ",")
	for _, a := range strings.Split(rest, ",") {
		if a = strings.TrimSpace(a); a != "" {
			op.Args = append(op.Args, a)
		}
	}
	return op, nil
}

// Counts returns op name -> occurrences.
func (c *Circuit) Counts() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		counts[op.Name]++
	}
	return counts
}

// OpNames returns the distinct op names in lexical order.
func (c *Circuit) OpNames() []string {
	counts := c.Counts()
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GateCounts parses every circuit and, for each tracked gate, lists its count
// in the circuits that use it. Circuits without the gate contribute no entry.
func GateCounts(circuits []string) (map[string][]int, error) {
	out := make(map[string][]int, len(TrackedGates))
	for _, g := range TrackedGates {
		out[g] = []int{}
	}
	for i, src := range circuits {
		c, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("circuit %d: %w", i, err)
		}
		counts := c.Counts()
		for _, g := range TrackedGates {
			if n, ok := counts[g]; ok {
				out[g] = append(out[g], n)
			}
		}
	}
	return out, nil
}

func firstWord(stmt string) string {
	if i := wordEnd(stmt); i >= 0 {
		return stmt[:i]
	}
	return stmt
}

// wordEnd returns the index of the first whitespace or '(' in s, or -1.
func wordEnd(s string) int {
	return strings.IndexFunc(s, func(r rune) bool {
		return r == '(' || unicode.IsSpace(r)
	})
}

// closingParen returns the index of the ')' matching the '(' at s[0], or -1.
func closingParen(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stripComments(src string) string {
	var b strings.Builder
	for _, ln := range strings.Split(src, "\n") {
		if i := strings.Index(ln, "//"); i >= 0 {
			ln = ln[:i]
		}
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitStatements is a bufio.SplitFunc yielding ';'-terminated statements.
// A braced block ends its statement at the closing '}' and the ';' inside it
// do not split.
func splitStatements(data []byte, atEOF bool) (advance int, token []byte, err error) {
	depth := 0
	for i, b := range data {
		switch b {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return i + 1, data[:i+1], nil
				}
			}
		case ';':
			if depth == 0 {
				return i + 1, data[:i], nil
			}
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
