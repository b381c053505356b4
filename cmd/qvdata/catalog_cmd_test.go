// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCLI(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	res := runCLI(t, "catalog", "scan", "--db", db, "--data", goodData)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ok, 3 files (3 ok, 0 invalid, 0 removed)")

	res = runCLI(t, "catalog", "list", "--db", db, "--format", "json")
	require.Equal(t, exitOK, res.code, res.stderr)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "n2_H1-1_raw_results.json", entries[0]["rel_path"])

	res = runCLI(t, "catalog", "list", "--db", db, "--machine", "H2-1")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "n3_H2-1")
	assert.NotContains(t, res.stdout, "n2_H1-1")

	res = runCLI(t, "catalog", "verify", "--db", db, "--mode", "full")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "is healthy")
}

func TestCatalogCLI_InvalidFiles(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	res := runCLI(t, "catalog", "scan", "--db", db, "--data", badData)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "degraded, 3 files (0 ok, 3 invalid")

	res = runCLI(t, "catalog", "list", "--db", db, "--status", "invalid", "--format", "yaml")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "status: invalid")
}

func TestCatalogCLI_Usage(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	assert.Equal(t, exitUsage, runCLI(t, "catalog", "rebuild").code)
	assert.Equal(t, exitUsage, runCLI(t, "catalog", "list", "--db", db, "--status", "broken").code)
	assert.Equal(t, exitUsage, runCLI(t, "catalog", "verify", "--db", db, "--mode", "deep").code)
	assert.Equal(t, exitFailure, runCLI(t, "catalog", "verify", "--db", filepath.Join(t.TempDir(), "absent.db")).code)
}
