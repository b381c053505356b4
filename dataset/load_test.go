// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/qvdata/dataset"
)

const fixtureRoot = "testdata/data"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_KnownGoodFile(t *testing.T) {
	f, err := dataset.Load(filepath.Join(fixtureRoot, "n2_H1-1_raw_results.json"))
	require.NoError(t, err)

	assert.Equal(t, "H1-1", f.Machine)
	assert.Equal(t, 2, f.NumQubits)
	assert.Equal(t, "n2_H1-1", f.Experiment)
	require.Len(t, f.Records, 3, "one record per raw_results row")
	assert.Equal(t, 15, f.Shots())
	assert.Len(t, f.SHA256, 64)

	first := f.Records[0]
	assert.Equal(t, 0, first.Trial)
	assert.Equal(t, "qv_depth_2_trial_0", first.Circuit)
	assert.Equal(t, map[string]int{"00": 1, "01": 3, "11": 1}, first.Counts())
	assert.Contains(t, first.IdealCircuit, "OPENQASM 2.0;")
	assert.Equal(t, "qv_depth_2_trial_2", f.Records[2].Circuit)
}

func TestLoad_RecordCountMatchesRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "n3_H2-1_raw_results.json",
		`{"raw_results": [["000","001"],["111"],["010","010","011"],["100"]]}`)

	f, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Trials())
	assert.False(t, f.HasCircuits)
	assert.Nil(t, f.IdealCircuits())
}

func TestLoad_EmptyFirstCircuit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "n2_H1-1_raw_results.json",
		`{"raw_results": [["00"],["11"]], "qv_circs_nomeas": ["", "OPENQASM 2.0;\nqreg q[2];\ncx q[0],q[1];\n"]}`)

	f, err := dataset.Load(path)
	require.NoError(t, err)
	assert.True(t, f.HasCircuits)
	circuits := f.IdealCircuits()
	require.Len(t, circuits, 2)
	assert.Empty(t, circuits[0])
	assert.Contains(t, circuits[1], "cx q[0],q[1];")
}

func TestLoad_NotFound(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "n2_H1-1_raw_results.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_MalformedRow(t *testing.T) {
	_, err := dataset.Load("testdata/bad/n2_H1-1_raw_results.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrSchema)

	var se *dataset.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "raw_results", se.Column)
	assert.Equal(t, 1, se.Row)
	assert.Equal(t, 1, se.Shot)
	assert.Contains(t, se.Error(), "width 1, want 2")
}

func TestLoad_UnexpectedColumn(t *testing.T) {
	_, err := dataset.Load("testdata/bad/n2_extra_raw_results.json")
	var se *dataset.SchemaError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, "date", se.Column)
	assert.Equal(t, "unexpected column", se.Reason)
}

func TestLoad_Corrupt(t *testing.T) {
	_, err := dataset.Load("testdata/bad/n2_corrupt_raw_results.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrCorrupt)
	assert.NotErrorIs(t, err, dataset.ErrSchema)
}

func TestLoad_SchemaCases(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		body   string
		column string
		reason string
	}{
		{"missing raw_results", "n2_H1-1_raw_results.json", `{"qv_circs_nomeas": []}`, "raw_results", "missing column"},
		{"no rows", "n2_H1-1_raw_results.json", `{"raw_results": []}`, "raw_results", "no rows"},
		{"empty row", "n2_H1-1_raw_results.json", `{"raw_results": [["00"], []]}`, "raw_results", "row has no shots"},
		{"not a bitstring", "n2_H1-1_raw_results.json", `{"raw_results": [["0x"]]}`, "raw_results", `outcome "0x" is not a bitstring`},
		{"width disagrees with name", "n3_H1-1_raw_results.json", `{"raw_results": [["00"]]}`, "raw_results", `outcome "00" has width 2, want 3`},
		{"circuit count mismatch", "n2_H1-1_raw_results.json", `{"raw_results": [["00"],["11"]], "qv_circs_nomeas": ["OPENQASM 2.0;"]}`, "qv_circs_nomeas", "1 circuits for 2 rows"},
		{"wrong value type", "n2_H1-1_raw_results.json", `{"raw_results": [[1, 0]]}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.body)
			_, err := dataset.Load(path)
			require.ErrorIs(t, err, dataset.ErrSchema)

			var se *dataset.SchemaError
			require.True(t, errors.As(err, &se))
			if tt.column != "" {
				assert.Equal(t, tt.column, se.Column)
			}
			if tt.reason != "" {
				assert.Equal(t, tt.reason, se.Reason)
			}
		})
	}
}

func TestLoad_TrailingContent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "n2_H1-1_raw_results.json", `{"raw_results": [["00"]]} {"raw_results": []}`)
	_, err := dataset.Load(path)
	assert.ErrorIs(t, err, dataset.ErrCorrupt)
}

func TestLoad_Directory(t *testing.T) {
	_, err := dataset.Load(t.TempDir())
	assert.ErrorIs(t, err, dataset.ErrCorrupt)
}

func TestLoad_UnconventionalNameInfersWidth(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run7.json", `{"raw_results": [["0101","1111"]]}`)

	f, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, f.NumQubits)
	assert.Equal(t, "", f.Machine)
	assert.Equal(t, "run7", f.Experiment)
	assert.Equal(t, "qv_depth_4_trial_0", f.Records[0].Circuit)
}

func TestLoad_Idempotent(t *testing.T) {
	path := filepath.Join(fixtureRoot, "n2_H1-1_raw_results.json")

	first, err := dataset.Load(path)
	require.NoError(t, err)
	second, err := dataset.Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("reloading changed the result (-first +second):\n%s", diff)
	}
}

func TestOpen(t *testing.T) {
	f, err := dataset.Open(fixtureRoot, "H2-1", 3)
	require.NoError(t, err)
	assert.Equal(t, "n3_H2-1", f.Experiment)
	assert.Equal(t, 2, f.Trials())
}

func TestOpen_Errors(t *testing.T) {
	_, err := dataset.Open(fixtureRoot, "H9-9", 2)
	assert.ErrorIs(t, err, dataset.ErrNotFound)

	_, err = dataset.Open(filepath.Join(t.TempDir(), "missing"), "H1-1", 2)
	assert.ErrorIs(t, err, dataset.ErrNotFound)

	_, err = dataset.Open(fixtureRoot, "", 2)
	assert.ErrorIs(t, err, dataset.ErrInvalidName)

	_, err = dataset.Open(fixtureRoot, "H1-1", 0)
	assert.ErrorIs(t, err, dataset.ErrInvalidName)
}

func TestLoadDir(t *testing.T) {
	files, err := dataset.LoadDir(fixtureRoot, dataset.Filter{})
	require.NoError(t, err)

	var got []string
	for _, f := range files {
		got = append(got, f.Experiment)
	}
	assert.Equal(t, []string{"n2_H1-1", "n4_H1-1", "n3_H2-1"}, got)
}

func TestLoadDir_Filter(t *testing.T) {
	tests := []struct {
		name   string
		filter dataset.Filter
		want   []string
	}{
		{"machine", dataset.Filter{Machines: []string{"h1-1"}}, []string{"n2_H1-1", "n4_H1-1"}},
		{"qubits", dataset.Filter{Qubits: []int{3, 4}}, []string{"n4_H1-1", "n3_H2-1"}},
		{"experiment", dataset.Filter{Experiments: []string{"n2_H1-1"}}, []string{"n2_H1-1"}},
		{"machine and qubits", dataset.Filter{Machines: []string{"H1-1"}, Qubits: []int{3}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := dataset.LoadDir(fixtureRoot, tt.filter)
			require.NoError(t, err)
			var got []string
			for _, f := range files {
				got = append(got, f.Experiment)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDir_Recursive(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "2023-06")
	require.NoError(t, os.Mkdir(sub, 0o750))
	writeFile(t, root, "n2_H1-1_raw_results.json", `{"raw_results": [["00"]]}`)
	writeFile(t, sub, "n2_H1-2_raw_results.json", `{"raw_results": [["01"]]}`)

	flat, err := dataset.LoadDir(root, dataset.Filter{})
	require.NoError(t, err)
	assert.Len(t, flat, 1)

	deep, err := dataset.LoadDir(root, dataset.Filter{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, deep, 2)
}

func TestLoadDir_FailingFileAborts(t *testing.T) {
	_, err := dataset.LoadDir("testdata/bad", dataset.Filter{})
	require.Error(t, err)
	// n2_H1-1 sorts first and carries the malformed row.
	assert.ErrorIs(t, err, dataset.ErrSchema)
}

func TestLoadDir_MissingRoot(t *testing.T) {
	_, err := dataset.LoadDir(filepath.Join(t.TempDir(), "nope"), dataset.Filter{})
	assert.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestLoadDir_Idempotent(t *testing.T) {
	a, err := dataset.LoadDir(fixtureRoot, dataset.Filter{})
	require.NoError(t, err)
	b, err := dataset.LoadDir(fixtureRoot, dataset.Filter{})
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("directory reload differs:\n%s", diff)
	}
}

func TestLoadDir_DefaultRoot(t *testing.T) {
	t.Chdir("..")

	files, err := dataset.LoadDir(dataset.DefaultRoot(), dataset.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Experiment)
		assert.Positive(t, f.Trials(), "%s has no circuits", f.Experiment)
	}
	assert.Subset(t, names, []string{"n2_H1-1", "n3_H2-1", "n4_H1-1"})

	f, err := dataset.Open(dataset.DefaultRoot(), "H1-1", 2)
	require.NoError(t, err)
	assert.Len(t, f.IdealCircuits(), f.Trials())
}
