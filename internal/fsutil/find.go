// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// FindFiles returns the regular files under root whose base name satisfies
// match, in lexical order. With recursive unset only the top level of root
// is inspected.
func FindFiles(root string, recursive bool, match func(name string) bool) ([]string, error) {
	if match == nil {
		panic("fsutil: match must not be nil")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
