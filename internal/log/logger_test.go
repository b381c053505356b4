// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfigure_ServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "qvdata-test", Version: "v0.0.0"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("dataset")
	l.Debug().Str(FieldPath, "data/n2_H1-1_raw_results.json").Msg("loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v\n%s", err, buf.String())
	}
	if entry[FieldService] != "qvdata-test" {
		t.Errorf("service = %v", entry[FieldService])
	}
	if entry[FieldComponent] != "dataset" {
		t.Errorf("component = %v", entry[FieldComponent])
	}
	if entry[FieldVersion] != "v0.0.0" {
		t.Errorf("version = %v", entry[FieldVersion])
	}
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "chatty", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", zerolog.GlobalLevel())
	}
	L().Debug().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("debug line should be suppressed at info level, got %q", buf.String())
	}
}

func TestDerive(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := Derive(func(c *zerolog.Context) {
		*c = c.Str(FieldMachine, "H1-1")
	})
	l.Info().Msg("x")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry[FieldMachine] != "H1-1" {
		t.Errorf("machine = %v", entry[FieldMachine])
	}
}
