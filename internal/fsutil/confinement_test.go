// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfineRelPath(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(subDir, 0o750); err != nil {
		t.Fatal(err)
	}

	safeFile := filepath.Join(tmpDir, "n2_H1-1_raw_results.json")
	if err := os.WriteFile(safeFile, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	linkOutside := filepath.Join(tmpDir, "link_outside")
	if err := os.Symlink("..", linkOutside); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		target   string
		wantErr  bool
		wantPath string // if not empty, checks suffix
	}{
		{
			name:     "valid simple file",
			target:   "n2_H1-1_raw_results.json",
			wantPath: "n2_H1-1_raw_results.json",
		},
		{
			name:     "missing file in existing subdir",
			target:   "subdir/n4_H1-1_raw_results.json",
			wantPath: filepath.Join("subdir", "n4_H1-1_raw_results.json"),
		},
		{
			name:    "traversal attempt ..",
			target:  "../outside.json",
			wantErr: true,
		},
		{
			name:    "absolute path",
			target:  "/etc/passwd",
			wantErr: true,
		},
		{
			name:    "backslash",
			target:  `subdir\x.json`,
			wantErr: true,
		},
		{
			name:    "symlink escape",
			target:  "link_outside/foo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfineRelPath(tmpDir, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfineRelPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.wantPath != "" && !strings.HasSuffix(got, tt.wantPath) {
				t.Errorf("ConfineRelPath() got = %v, want suffix %v", got, tt.wantPath)
			}
		})
	}
}

func TestConfineRelPath_MissingRoot(t *testing.T) {
	_, err := ConfineRelPath(filepath.Join(t.TempDir(), "nope"), "x.json")
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f.json")
	if err := os.WriteFile(f, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := IsRegularFile(f); err != nil {
		t.Errorf("expected regular file, got %v", err)
	}
	if err := IsRegularFile(dir); err == nil {
		t.Error("expected error for directory")
	}
	if err := IsRegularFile(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
