// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/qvdata/internal/fsutil"
	xglog "github.com/ManuGH/qvdata/internal/log"
	"github.com/ManuGH/qvdata/internal/metrics"
)

const (
	columnRawResults = "raw_results"
	columnCircuits   = "qv_circs_nomeas"
)

// DefaultRoot is the dataset directory used when no root is configured.
func DefaultRoot() string { return "data" }

// rawFile mirrors the on-disk JSON object. RawResults is a pointer so that a
// missing key can be told apart from an empty array.
type rawFile struct {
	RawResults *[][]string `json:"raw_results"`
	Circuits   []string    `json:"qv_circs_nomeas"`
}

// Load reads and parses one dataset file.
func Load(path string) (*File, error) {
	logger := xglog.Derive(func(c *zerolog.Context) {
		*c = c.Str(xglog.FieldComponent, "dataset").Str(xglog.FieldPath, path)
	})
	start := time.Now()

	f, err := load(path)
	if err != nil {
		metrics.IncLoadFailure(outcomeOf(err))
		logger.Debug().
			Err(err).
			Str(xglog.FieldEvent, "dataset.load_failed").
			Msg("dataset load failed")
		return nil, err
	}

	metrics.RecordLoad(f.Trials(), f.Shots(), time.Since(start).Seconds())
	logger.Debug().
		Str(xglog.FieldEvent, "dataset.loaded").
		Str(xglog.FieldExperiment, f.Experiment).
		Int(xglog.FieldTrials, f.Trials()).
		Int(xglog.FieldShots, f.Shots()).
		Msg("dataset loaded")
	return f, nil
}

func load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrCorrupt, path)
	}

	// #nosec G304 -- dataset paths are chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCorrupt, path, err)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	// Conventional names pin machine and width; other names fall back to the
	// width of the first measured bitstring.
	name, nameErr := ParseName(path)
	experiment := name.Experiment()
	if nameErr != nil {
		name = Name{}
		experiment = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	rows := *raw.RawResults
	if len(rows) == 0 {
		return nil, newSchemaError(path, columnRawResults, "no rows")
	}
	width := name.NumQubits
	if width == 0 && len(rows[0]) > 0 {
		width = len(rows[0][0])
		name.NumQubits = width
	}
	if width == 0 {
		return nil, newSchemaError(path, columnRawResults, "cannot determine qubit count")
	}
	if raw.Circuits != nil && len(raw.Circuits) != len(rows) {
		return nil, newSchemaError(path, columnCircuits,
			fmt.Sprintf("%d circuits for %d rows", len(raw.Circuits), len(rows)))
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		if err := checkRow(path, i, row, width); err != nil {
			return nil, err
		}
		rec := Record{
			Experiment: experiment,
			Machine:    name.Machine,
			NumQubits:  width,
			Trial:      i,
			Circuit:    CircuitName(width, i),
			Outcomes:   row,
		}
		if raw.Circuits != nil {
			rec.IdealCircuit = raw.Circuits[i]
		}
		records[i] = rec
	}

	sum := sha256.Sum256(data)
	return &File{
		Path:        path,
		Machine:     name.Machine,
		NumQubits:   width,
		Experiment:  experiment,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		SHA256:      hex.EncodeToString(sum[:]),
		HasCircuits: raw.Circuits != nil,
		Records:     records,
	}, nil
}

// decode parses the JSON object strictly: unknown keys and wrongly typed
// values are schema errors, malformed JSON is corruption.
func decode(path string, data []byte) (*rawFile, error) {
	var raw rawFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return nil, newSchemaError(path, typeErr.Field,
				fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			column := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return nil, newSchemaError(path, column, "unexpected column")
		case errors.Is(err, io.EOF):
			return nil, fmt.Errorf("%w: %s: empty file", ErrCorrupt, path)
		default:
			return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
		}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: %s: trailing content after JSON object", ErrCorrupt, path)
	}
	if raw.RawResults == nil {
		return nil, newSchemaError(path, columnRawResults, "missing column")
	}
	return &raw, nil
}

func checkRow(path string, row int, outcomes []string, width int) error {
	if len(outcomes) == 0 {
		e := newSchemaError(path, columnRawResults, "row has no shots")
		e.Row = row
		return e
	}
	for j, o := range outcomes {
		reason := ""
		switch {
		case len(o) != width:
			reason = fmt.Sprintf("outcome %q has width %d, want %d", o, len(o), width)
		case strings.Trim(o, "01") != "":
			reason = fmt.Sprintf("outcome %q is not a bitstring", o)
		}
		if reason != "" {
			e := newSchemaError(path, columnRawResults, reason)
			e.Row = row
			e.Shot = j
			return e
		}
	}
	return nil
}

// Open loads the experiment file for machine and nqubits below root, the
// way notebooks address the dataset.
func Open(root, machine string, nqubits int) (*File, error) {
	name := Name{NumQubits: nqubits, Machine: machine}
	if !name.Valid() {
		return nil, fmt.Errorf("%w: machine %q, nqubits %d", ErrInvalidName, machine, nqubits)
	}
	path, err := fsutil.ConfineRelPath(root, name.FileName())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("resolve %s in %s: %w", name.FileName(), root, err)
	}
	return Load(path)
}

// LoadDir loads every dataset file under root that passes the filter, ordered
// by machine then qubit count. The first failing file aborts the load.
func LoadDir(root string, filter Filter) ([]*File, error) {
	logger := xglog.WithComponent("dataset")

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root is not a directory: %s", root)
	}

	paths, err := fsutil.FindFiles(root, filter.Recursive, IsDatasetFile)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	var files []*File
	for _, p := range paths {
		name, _ := ParseName(p)
		if !filter.Match(name) {
			continue
		}
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	SortFiles(files)
	logger.Info().
		Str(xglog.FieldEvent, "dataset.dir_loaded").
		Str(xglog.FieldRoot, root).
		Int("files", len(files)).
		Msg("dataset directory loaded")
	return files, nil
}

// SortFiles orders files by machine, then qubit count, then path.
func SortFiles(files []*File) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.Machine != b.Machine {
			return a.Machine < b.Machine
		}
		if a.NumQubits != b.NumQubits {
			return a.NumQubits < b.NumQubits
		}
		return filepath.ToSlash(a.Path) < filepath.ToSlash(b.Path)
	})
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrSchema):
		return metrics.OutcomeSchema
	default:
		return metrics.OutcomeCorrupt
	}
}
