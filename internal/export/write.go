// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package export

import (
	"bufio"
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/qvdata/dataset"
	xglog "github.com/ManuGH/qvdata/internal/log"
)

// WriteFile writes the table to path atomically: readers see either the old
// file or the complete new one.
func WriteFile(path string, table Table, format Format, files []*dataset.File) error {
	logger := xglog.WithComponent("export")

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending export file: %w", err)
	}
	defer func() {
		// No-op once committed.
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending export file")
		}
	}()

	bw := bufio.NewWriter(pendingFile)
	if err := Write(bw, table, format, files); err != nil {
		return fmt.Errorf("write %s table: %w", table, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace export file: %w", err)
	}

	logger.Info().
		Str(xglog.FieldEvent, "export.written").
		Str(xglog.FieldPath, path).
		Str("table", string(table)).
		Str("format", string(format)).
		Int("files", len(files)).
		Msg("export written")
	return nil
}
