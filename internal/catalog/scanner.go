// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ManuGH/qvdata/dataset"
	"github.com/ManuGH/qvdata/internal/fsutil"
	"github.com/ManuGH/qvdata/internal/log"
	"github.com/ManuGH/qvdata/internal/metrics"
)

// ScanOptions tune a Scanner.
type ScanOptions struct {
	// Recursive descends into subdirectories of the root.
	Recursive bool
}

// Scanner walks a dataset root and indexes every conventional file.
type Scanner struct {
	store *Store
	opts  ScanOptions
	now   func() time.Time
}

// NewScanner creates a new dataset scanner.
func NewScanner(store *Store, opts ScanOptions) *Scanner {
	return &Scanner{store: store, opts: opts, now: time.Now}
}

// Scan indexes root in a single transaction. Files that fail to load are
// stored with status invalid; rows for files that disappeared are removed.
// A returned error means nothing was committed.
func (sc *Scanner) Scan(ctx context.Context, root string) (*Scan, error) {
	result := &Scan{
		ID:      uuid.NewString(),
		Started: sc.now(),
		Status:  ScanStatusOK,
	}
	ctx = log.ContextWithScanID(ctx, result.ID)
	logger := log.WithComponentFromContext(ctx, "catalog")

	fail := func(err error) (*Scan, error) {
		result.Finished = sc.now()
		result.Status = ScanStatusFailed
		result.LastError = err.Error()
		metrics.RecordCatalogScan(result.Status.String(), result.OK, result.Invalid,
			result.Finished.Sub(result.Started).Seconds())
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "catalog.scan_failed").
			Str(log.FieldRoot, root).
			Msg("catalog scan failed")
		return result, err
	}

	resolved, err := resolveRoot(root)
	if err != nil {
		return fail(err)
	}
	result.Root = resolved

	paths, err := fsutil.FindFiles(resolved, sc.opts.Recursive, dataset.IsDatasetFile)
	if err != nil {
		return fail(fmt.Errorf("list %s: %w", resolved, err))
	}

	tx, err := sc.store.BeginTx(ctx)
	if err != nil {
		return fail(fmt.Errorf("begin tx: %w", err))
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	scanTime := sc.now()
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("scan cancelled: %w", err))
		}

		entry, err := sc.index(resolved, p, scanTime, result.ID, logger)
		if err != nil {
			return fail(err)
		}
		if entry == nil {
			continue
		}
		if err := sc.store.UpsertEntry(ctx, tx, *entry); err != nil {
			return fail(fmt.Errorf("upsert %s: %w", entry.RelPath, err))
		}

		result.Total++
		if entry.Status == EntryStatusOK {
			result.OK++
		} else {
			result.Invalid++
			result.LastError = entry.LastError
		}
	}

	removed, err := sc.store.DeleteStale(ctx, tx, resolved, result.ID)
	if err != nil {
		return fail(fmt.Errorf("delete stale rows: %w", err))
	}
	result.Removed = removed

	if result.Invalid > 0 {
		result.Status = ScanStatusDegraded
	}
	result.Finished = sc.now()

	if err := sc.store.InsertScan(ctx, tx, *result); err != nil {
		return fail(fmt.Errorf("record scan: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return fail(fmt.Errorf("commit tx: %w", err))
	}
	committed = true

	metrics.RecordCatalogScan(result.Status.String(), result.OK, result.Invalid,
		result.Finished.Sub(result.Started).Seconds())
	logger.Info().
		Str(log.FieldEvent, "catalog.scan_complete").
		Str(log.FieldRoot, resolved).
		Int("total", result.Total).
		Int("ok", result.OK).
		Int("invalid", result.Invalid).
		Int("removed", result.Removed).
		Str("status", result.Status.String()).
		Msg("catalog scan complete")
	return result, nil
}

// index loads one file and turns the outcome into a catalog row. A nil entry
// means the file vanished after listing.
func (sc *Scanner) index(root, path string, scanTime time.Time, scanID string, logger zerolog.Logger) (*Entry, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("relative path for %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", rel, err)
	}

	name, _ := dataset.ParseName(path)
	entry := Entry{
		Root:       root,
		RelPath:    filepath.ToSlash(rel),
		Experiment: name.Experiment(),
		Machine:    name.Machine,
		NumQubits:  name.NumQubits,
		SizeBytes:  info.Size(),
		ModTime:    info.ModTime(),
		ScanTime:   scanTime,
		Status:     EntryStatusOK,
		ScanID:     scanID,
	}

	f, err := dataset.Load(path)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			return nil, nil
		}
		entry.Status = EntryStatusInvalid
		entry.LastError = err.Error()
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "catalog.invalid_file").
			Str(log.FieldPath, entry.RelPath).
			Msg("dataset file failed to load")
		return &entry, nil
	}

	entry.Trials = f.Trials()
	entry.Shots = f.Shots()
	entry.SHA256 = f.SHA256
	return &entry, nil
}

func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve root path: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("dataset root is not a directory: %s", root)
	}
	return filepath.Clean(resolved), nil
}
