// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package sqlite

import (
	"crypto/rand"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	rw := DSN("/tmp/c.db", DefaultConfig())
	assert.Contains(t, rw, "file:/tmp/c.db?")
	assert.Contains(t, rw, "_pragma=journal_mode(WAL)")
	assert.Contains(t, rw, "_pragma=busy_timeout(5000)")
	assert.NotContains(t, rw, "mode=ro")

	ro := DSN("/tmp/c.db", Config{ReadOnly: true})
	assert.Contains(t, ro, "mode=ro")
	assert.NotContains(t, ro, "journal_mode")
}

func TestParseVerifyMode(t *testing.T) {
	m, err := ParseVerifyMode("FULL")
	require.NoError(t, err)
	assert.Equal(t, VerifyFull, m)

	_, err = ParseVerifyMode("deep")
	assert.Error(t, err)
}

func TestVerifyIntegrity_Missing(t *testing.T) {
	_, err := VerifyIntegrity(filepath.Join(t.TempDir(), "absent.db"), VerifyQuick)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestVerifyIntegrity_DetectsCorruption(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "corruptible.sqlite")

	db, err := Open(dbPath, DefaultConfig())
	require.NoError(t, err)

	_, err = db.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, data TEXT);")
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		_, err = db.Exec("INSERT INTO test (data) VALUES (hex(randomblob(100)));")
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	issues, err := VerifyIntegrity(dbPath, VerifyQuick)
	require.NoError(t, err)
	require.Nil(t, issues)

	// Overwrite part of the second page.
	f, err := os.OpenFile(dbPath, os.O_RDWR, 0o644)
	require.NoError(t, err)
	junk := make([]byte, 100)
	_, _ = rand.Read(junk)
	_, err = f.WriteAt(junk, 4096)
	require.NoError(t, f.Close())
	require.NoError(t, err)

	issues, err = VerifyIntegrity(dbPath, VerifyFull)
	if err != nil {
		// Some corruptions surface as a query error rather than diagnostic rows.
		return
	}
	assert.NotEmpty(t, issues)
}
