// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the effective configuration after all sources are merged.
type AppConfig struct {
	Version     string
	DataDir     string
	Recursive   bool
	CatalogPath string
	LogLevel    string
	MetricsFile string
	Watch       WatchConfig
	Export      ExportConfig
}

// WatchConfig controls the catalog watcher.
type WatchConfig struct {
	// Interval is the minimum time between two rescans.
	Interval time.Duration
	// Debounce collapses bursts of file events into one rescan.
	Debounce time.Duration
}

// ExportConfig holds export defaults used when flags are omitted.
type ExportConfig struct {
	Format string
	Table  string
}

// FileConfig is the on-disk YAML shape. Durations are Go duration strings.
type FileConfig struct {
	DataDir     string           `yaml:"dataDir,omitempty" json:"dataDir,omitempty"`
	Recursive   *bool            `yaml:"recursive,omitempty" json:"recursive,omitempty"`
	CatalogPath string           `yaml:"catalogPath,omitempty" json:"catalogPath,omitempty"`
	LogLevel    string           `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	MetricsFile string           `yaml:"metricsFile,omitempty" json:"metricsFile,omitempty"`
	Watch       WatchFileConfig  `yaml:"watch,omitempty" json:"watch,omitempty"`
	Export      ExportFileConfig `yaml:"export,omitempty" json:"export,omitempty"`
}

type WatchFileConfig struct {
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty"`
	Debounce string `yaml:"debounce,omitempty" json:"debounce,omitempty"`
}

type ExportFileConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Table  string `yaml:"table,omitempty" json:"table,omitempty"`
}

// Defaults
const (
	DefaultDataDir       = "data"
	DefaultCatalogPath   = "qvdata.db"
	DefaultLogLevel      = "info"
	DefaultWatchInterval = 2 * time.Second
	DefaultWatchDebounce = 500 * time.Millisecond
	DefaultExportFormat  = "csv"
	DefaultExportTable   = "trials"
)

// Environment keys
const (
	EnvDataDir       = "QVDATA_DATA_DIR"
	EnvRecursive     = "QVDATA_RECURSIVE"
	EnvCatalogPath   = "QVDATA_CATALOG_PATH"
	EnvLogLevel      = "QVDATA_LOG_LEVEL"
	EnvMetricsFile   = "QVDATA_METRICS_FILE"
	EnvWatchInterval = "QVDATA_WATCH_INTERVAL"
	EnvWatchDebounce = "QVDATA_WATCH_DEBOUNCE"
)

// ExportFormats and ExportTables list accepted export settings.
var (
	ExportFormats = []string{"csv", "json", "yaml"}
	ExportTables  = []string{"trials", "counts"}
)
