// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package catalog keeps a local SQLite index of the dataset directory: which
// experiment files exist, their shape and checksum, and whether they load.
package catalog

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("catalog: not found")

// EntryStatus records whether a dataset file loaded cleanly.
type EntryStatus string

const (
	EntryStatusOK      EntryStatus = "ok"      // File loaded
	EntryStatusInvalid EntryStatus = "invalid" // Load failed; see LastError
)

// String returns the string representation of EntryStatus.
func (s EntryStatus) String() string {
	return string(s)
}

// ScanStatus is the final state of a scan.
type ScanStatus string

const (
	ScanStatusOK       ScanStatus = "ok"       // Every file loaded
	ScanStatusDegraded ScanStatus = "degraded" // Some files are invalid
	ScanStatusFailed   ScanStatus = "failed"   // Scan aborted, nothing committed
)

// String returns the string representation of ScanStatus.
func (s ScanStatus) String() string {
	return string(s)
}

// Entry is one indexed dataset file.
type Entry struct {
	Root       string      `json:"root" yaml:"root"`
	RelPath    string      `json:"rel_path" yaml:"rel_path"`
	Experiment string      `json:"experiment" yaml:"experiment"`
	Machine    string      `json:"machine" yaml:"machine"`
	NumQubits  int         `json:"nqubits" yaml:"nqubits"`
	Trials     int         `json:"trials" yaml:"trials"`
	Shots      int         `json:"shots" yaml:"shots"`
	SizeBytes  int64       `json:"size_bytes" yaml:"size_bytes"`
	ModTime    time.Time   `json:"mod_time" yaml:"mod_time"`
	ScanTime   time.Time   `json:"scan_time" yaml:"scan_time"`
	SHA256     string      `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Status     EntryStatus `json:"status" yaml:"status"`
	LastError  string      `json:"last_error,omitempty" yaml:"last_error,omitempty"`
	ScanID     string      `json:"scan_id" yaml:"scan_id"`
}

// Scan summarizes one pass over a dataset root.
type Scan struct {
	ID        string     `json:"id" yaml:"id"`
	Root      string     `json:"root" yaml:"root"`
	Started   time.Time  `json:"started" yaml:"started"`
	Finished  time.Time  `json:"finished" yaml:"finished"`
	Total     int        `json:"total" yaml:"total"`
	OK        int        `json:"ok" yaml:"ok"`
	Invalid   int        `json:"invalid" yaml:"invalid"`
	Removed   int        `json:"removed" yaml:"removed"`
	Status    ScanStatus `json:"status" yaml:"status"`
	LastError string     `json:"last_error,omitempty" yaml:"last_error,omitempty"`
}

// Error returns a human-readable summary if the scan had issues.
func (s *Scan) Error() string {
	if s.Status == ScanStatusOK {
		return ""
	}
	return fmt.Sprintf("scan completed with %d invalid files, status=%s", s.Invalid, s.Status)
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Root      string
	Machine   string
	NumQubits int
	Status    EntryStatus
}
