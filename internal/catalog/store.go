// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/qvdata/internal/persistence/sqlite"
)

const timeLayout = time.RFC3339Nano

// Store provides SQLite persistence for the dataset catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the catalog database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sqlite.Open(dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		root TEXT NOT NULL,
		rel_path TEXT NOT NULL,
		experiment TEXT NOT NULL,
		machine TEXT NOT NULL,
		nqubits INTEGER NOT NULL,
		trials INTEGER NOT NULL DEFAULT 0,
		shots INTEGER NOT NULL DEFAULT 0,
		size_bytes INTEGER NOT NULL,
		mod_time TEXT NOT NULL,
		scan_time TEXT NOT NULL,
		sha256 TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL CHECK(status IN ('ok', 'invalid')),
		last_error TEXT NOT NULL DEFAULT '',
		scan_id TEXT NOT NULL,
		PRIMARY KEY (root, rel_path)
	);

	CREATE INDEX IF NOT EXISTS idx_datasets_machine ON datasets(machine, nqubits);

	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		started TEXT NOT NULL,
		finished TEXT NOT NULL,
		total INTEGER NOT NULL,
		ok INTEGER NOT NULL,
		invalid INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		status TEXT NOT NULL CHECK(status IN ('ok', 'degraded', 'failed')),
		last_error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_scans_root_finished ON scans(root, finished);
	`

	_, err := s.db.Exec(schema)
	return err
}

// BeginTx starts a new transaction.
// Used by the scanner so one scan commits atomically.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// UpsertEntry inserts or updates a dataset row within tx.
func (s *Store) UpsertEntry(ctx context.Context, tx *sql.Tx, e Entry) error {
	query := `
	INSERT INTO datasets (root, rel_path, experiment, machine, nqubits, trials, shots,
		size_bytes, mod_time, scan_time, sha256, status, last_error, scan_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(root, rel_path) DO UPDATE SET
		experiment = excluded.experiment,
		machine = excluded.machine,
		nqubits = excluded.nqubits,
		trials = excluded.trials,
		shots = excluded.shots,
		size_bytes = excluded.size_bytes,
		mod_time = excluded.mod_time,
		scan_time = excluded.scan_time,
		sha256 = excluded.sha256,
		status = excluded.status,
		last_error = excluded.last_error,
		scan_id = excluded.scan_id
	`

	_, err := tx.ExecContext(ctx, query,
		e.Root,
		e.RelPath,
		e.Experiment,
		e.Machine,
		e.NumQubits,
		e.Trials,
		e.Shots,
		e.SizeBytes,
		e.ModTime.UTC().Format(timeLayout),
		e.ScanTime.UTC().Format(timeLayout),
		e.SHA256,
		e.Status.String(),
		e.LastError,
		e.ScanID,
	)
	return err
}

// DeleteStale removes rows under root that the given scan did not touch and
// reports how many were removed.
func (s *Store) DeleteStale(ctx context.Context, tx *sql.Tx, root, scanID string) (int, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE root = ? AND scan_id <> ?`, root, scanID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// InsertScan records a finished scan within tx.
func (s *Store) InsertScan(ctx context.Context, tx *sql.Tx, sc Scan) error {
	query := `
	INSERT INTO scans (id, root, started, finished, total, ok, invalid, removed, status, last_error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		sc.ID,
		sc.Root,
		sc.Started.UTC().Format(timeLayout),
		sc.Finished.UTC().Format(timeLayout),
		sc.Total,
		sc.OK,
		sc.Invalid,
		sc.Removed,
		sc.Status.String(),
		sc.LastError,
	)
	return err
}

const entryColumns = `root, rel_path, experiment, machine, nqubits, trials, shots,
	size_bytes, mod_time, scan_time, sha256, status, last_error, scan_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var e Entry
	var modTimeStr, scanTimeStr string

	if err := r.Scan(
		&e.Root,
		&e.RelPath,
		&e.Experiment,
		&e.Machine,
		&e.NumQubits,
		&e.Trials,
		&e.Shots,
		&e.SizeBytes,
		&modTimeStr,
		&scanTimeStr,
		&e.SHA256,
		&e.Status,
		&e.LastError,
		&e.ScanID,
	); err != nil {
		return Entry{}, err
	}

	e.ModTime, _ = time.Parse(timeLayout, modTimeStr)
	e.ScanTime, _ = time.Parse(timeLayout, scanTimeStr)
	return e, nil
}

// List returns catalog rows matching f, ordered by machine, qubit count and path.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Root != "" {
		where = append(where, "root = ?")
		args = append(args, f.Root)
	}
	if f.Machine != "" {
		where = append(where, "machine = ? COLLATE NOCASE")
		args = append(args, f.Machine)
	}
	if f.NumQubits > 0 {
		where = append(where, "nqubits = ?")
		args = append(args, f.NumQubits)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status.String())
	}

	query := `SELECT ` + entryColumns + ` FROM datasets`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY machine, nqubits, rel_path"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves a single row by root and relative path.
func (s *Store) Get(ctx context.Context, root, relPath string) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM datasets WHERE root = ? AND rel_path = ?`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, root, relPath))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, relPath)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LastScan returns the most recent scan of root, or of any root when root is empty.
func (s *Store) LastScan(ctx context.Context, root string) (*Scan, error) {
	query := `
	SELECT id, root, started, finished, total, ok, invalid, removed, status, last_error
	FROM scans`
	var args []any
	if root != "" {
		query += ` WHERE root = ?`
		args = append(args, root)
	}
	query += ` ORDER BY finished DESC LIMIT 1`

	var sc Scan
	var startedStr, finishedStr string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&sc.ID, &sc.Root, &startedStr, &finishedStr,
		&sc.Total, &sc.OK, &sc.Invalid, &sc.Removed, &sc.Status, &sc.LastError,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no scans recorded", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	sc.Started, _ = time.Parse(timeLayout, startedStr)
	sc.Finished, _ = time.Parse(timeLayout, finishedStr)
	return &sc, nil
}
