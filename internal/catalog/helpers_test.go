// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtures = "../../dataset/testdata"

// copyFixture copies a dataset fixture into dir.
func copyFixture(t *testing.T, dir, src string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtures, src))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.Base(src)), data, 0o600))
}

// newDataRoot returns a temp root holding the three good fixtures.
func newDataRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		"data/n2_H1-1_raw_results.json",
		"data/n3_H2-1_raw_results.json",
		"data/n4_H1-1_raw_results.json",
		"data/README.txt",
	} {
		copyFixture(t, dir, name)
	}
	return dir
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	return store
}
