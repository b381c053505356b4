// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals that a dataset file or root does not exist.
	// Errors wrapping it also match fs.ErrNotExist.
	ErrNotFound = errors.New("dataset not found")
	// ErrSchema signals that a file parsed but its shape does not match the dataset schema.
	ErrSchema = errors.New("dataset schema mismatch")
	// ErrCorrupt signals that a file could not be read or is not valid JSON.
	ErrCorrupt = errors.New("dataset file unreadable or corrupt")
	// ErrInvalidName is returned for file names outside the n{N}_{machine}_raw_results.json convention.
	ErrInvalidName = errors.New("invalid dataset file name")
)

// SchemaError describes where a dataset file deviates from the expected shape.
// Row and Shot are -1 when the problem is not tied to a specific row or shot.
type SchemaError struct {
	Path   string
	Column string
	Row    int
	Shot   int
	Reason string
}

func newSchemaError(path, column, reason string) *SchemaError {
	return &SchemaError{Path: path, Column: column, Row: -1, Shot: -1, Reason: reason}
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrSchema, e.Path)
	if e.Column != "" {
		fmt.Fprintf(&b, ": %s", e.Column)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Shot >= 0 {
		fmt.Fprintf(&b, ": shot %d", e.Shot)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	return b.String()
}

// Is lets errors.Is(err, ErrSchema) match any *SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
