// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextWithScanID(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		scanID string
		want   string
	}{
		{
			name:   "nil context",
			ctx:    nil,
			scanID: "scan-123",
			want:   "scan-123",
		},
		{
			name:   "background context",
			ctx:    context.Background(),
			scanID: "scan-456",
			want:   "scan-456",
		},
		{
			name:   "empty scan ID",
			ctx:    context.Background(),
			scanID: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithScanID(tt.ctx, tt.scanID)
			if got := ScanIDFromContext(ctx); got != tt.want {
				t.Errorf("ScanIDFromContext() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanIDFromContext_Missing(t *testing.T) {
	if got := ScanIDFromContext(nil); got != "" { //nolint:staticcheck // nil context is part of the contract
		t.Errorf("expected empty scan id for nil context, got %q", got)
	}
	if got := ScanIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty scan id, got %q", got)
	}
}

func TestWithContext_AddsScanID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := ContextWithScanID(context.Background(), "abc")
	l := WithContext(ctx, logger)
	l.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry[FieldScanID] != "abc" {
		t.Errorf("expected scan_id=abc, got %v", entry[FieldScanID])
	}
}

func TestWithContext_NoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	l := WithContext(context.Background(), logger)
	l.Info().Msg("plain")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if _, ok := entry[FieldScanID]; ok {
		t.Errorf("did not expect scan_id field, got %v", entry)
	}
}

func TestWithComponentFromContext(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	ctx := ContextWithScanID(context.Background(), "scan-1")
	l := WithComponentFromContext(ctx, "catalog")
	l.Info().Msg("scan started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v\n%s", err, buf.String())
	}
	if entry[FieldComponent] != "catalog" {
		t.Errorf("component = %v", entry[FieldComponent])
	}
	if entry[FieldScanID] != "scan-1" {
		t.Errorf("scan_id = %v", entry[FieldScanID])
	}
}
