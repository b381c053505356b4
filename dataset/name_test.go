// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset

import (
	"errors"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Name
		wantErr bool
	}{
		{"simple", "n12_H1-1_raw_results.json", Name{NumQubits: 12, Machine: "H1-1"}, false},
		{"with directory", "data/2023/n2_H1-2_raw_results.json", Name{NumQubits: 2, Machine: "H1-2"}, false},
		{"underscore in machine", "n10_H2_emulator_raw_results.json", Name{NumQubits: 10, Machine: "H2_emulator"}, false},
		{"zero qubits", "n0_H1-1_raw_results.json", Name{}, true},
		{"missing machine", "n4__raw_results.json", Name{}, true},
		{"wrong suffix", "n4_H1-1_results.json", Name{}, true},
		{"no prefix", "4_H1-1_raw_results.json", Name{}, true},
		{"not numeric", "nX_H1-1_raw_results.json", Name{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidName) {
					t.Fatalf("expected ErrInvalidName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseName(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNameRoundTrip(t *testing.T) {
	n := Name{NumQubits: 16, Machine: "H1-1"}
	if got := n.FileName(); got != "n16_H1-1_raw_results.json" {
		t.Fatalf("FileName() = %q", got)
	}
	back, err := ParseName(n.FileName())
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if back != n {
		t.Errorf("round trip = %+v, want %+v", back, n)
	}
	if n.Experiment() != "n16_H1-1" {
		t.Errorf("Experiment() = %q", n.Experiment())
	}
}

func TestNameValid(t *testing.T) {
	if !(Name{NumQubits: 2, Machine: "H1-1"}).Valid() {
		t.Error("expected valid name")
	}
	for _, n := range []Name{
		{NumQubits: 0, Machine: "H1-1"},
		{NumQubits: 2},
		{NumQubits: 2, Machine: "../H1-1"},
	} {
		if n.Valid() {
			t.Errorf("expected %+v to be invalid", n)
		}
	}
}

func TestCircuitName(t *testing.T) {
	if got := CircuitName(12, 3); got != "qv_depth_12_trial_3" {
		t.Errorf("CircuitName = %q", got)
	}
}
