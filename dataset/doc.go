// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package dataset loads quantum volume measurement files into in-memory records.
//
// A dataset root (by default the "data" directory) holds one JSON file per
// experiment, named n{nqubits}_{machine}_raw_results.json. Each file carries the
// measured bitstrings of every QV circuit ("raw_results", one row per circuit)
// and optionally the ideal circuits as OpenQASM ("qv_circs_nomeas").
//
// Example usage:
//
//	f, err := dataset.Open("data", "H1-1", 12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range f.Records {
//	    fmt.Println(rec.Circuit, rec.Shots())
//	}
//
// Loads are synchronous, read-only and idempotent. Failures are reported, never
// recovered: errors.Is(err, ErrNotFound), errors.Is(err, ErrSchema) and
// errors.Is(err, ErrCorrupt) classify them.
package dataset
