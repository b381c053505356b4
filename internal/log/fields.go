// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldComponent = "component"
	FieldScanID    = "scan_id"
	FieldEvent     = "event"

	// Dataset fields
	FieldExperiment = "experiment"
	FieldMachine    = "machine"
	FieldQubits     = "nqubits"
	FieldTrials     = "trials"
	FieldShots      = "shots"

	// Path fields
	FieldPath = "path"
	FieldRoot = "root"
)
