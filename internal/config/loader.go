// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	version    string
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath: configPath,
		version:    version,
	}
}

// Load loads configuration with precedence: ENV > File > Defaults.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	mergeEnvConfig(&cfg)
	cfg.Version = l.version

	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}
	if cfg.CatalogPath != "" {
		if abs, err := filepath.Abs(cfg.CatalogPath); err == nil {
			cfg.CatalogPath = abs
		}
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:     DefaultDataDir,
		CatalogPath: DefaultCatalogPath,
		LogLevel:    DefaultLogLevel,
		Watch: WatchConfig{
			Interval: DefaultWatchInterval,
			Debounce: DefaultWatchDebounce,
		},
		Export: ExportConfig{
			Format: DefaultExportFormat,
			Table:  DefaultExportTable,
		},
	}
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.Recursive != nil {
		dst.Recursive = *src.Recursive
	}
	if src.CatalogPath != "" {
		dst.CatalogPath = src.CatalogPath
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.MetricsFile != "" {
		dst.MetricsFile = src.MetricsFile
	}
	if src.Watch.Interval != "" {
		d, err := time.ParseDuration(src.Watch.Interval)
		if err != nil {
			return fmt.Errorf("watch.interval: %w", err)
		}
		dst.Watch.Interval = d
	}
	if src.Watch.Debounce != "" {
		d, err := time.ParseDuration(src.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("watch.debounce: %w", err)
		}
		dst.Watch.Debounce = d
	}
	if src.Export.Format != "" {
		dst.Export.Format = src.Export.Format
	}
	if src.Export.Table != "" {
		dst.Export.Table = src.Export.Table
	}
	return nil
}

func mergeEnvConfig(cfg *AppConfig) {
	cfg.DataDir = ParseString(EnvDataDir, cfg.DataDir)
	cfg.Recursive = ParseBool(EnvRecursive, cfg.Recursive)
	cfg.CatalogPath = ParseString(EnvCatalogPath, cfg.CatalogPath)
	cfg.LogLevel = ParseString(EnvLogLevel, cfg.LogLevel)
	cfg.MetricsFile = ParseString(EnvMetricsFile, cfg.MetricsFile)
	cfg.Watch.Interval = ParseDuration(EnvWatchInterval, cfg.Watch.Interval)
	cfg.Watch.Debounce = ParseDuration(EnvWatchDebounce, cfg.Watch.Debounce)
}

// ToFileConfig renders the effective configuration in its file shape, the
// form used by `qvdata config dump`.
func ToFileConfig(cfg AppConfig) FileConfig {
	recursive := cfg.Recursive
	return FileConfig{
		DataDir:     cfg.DataDir,
		Recursive:   &recursive,
		CatalogPath: cfg.CatalogPath,
		LogLevel:    cfg.LogLevel,
		MetricsFile: cfg.MetricsFile,
		Watch: WatchFileConfig{
			Interval: cfg.Watch.Interval.String(),
			Debounce: cfg.Watch.Debounce.String(),
		},
		Export: ExportFileConfig{
			Format: cfg.Export.Format,
			Table:  cfg.Export.Table,
		},
	}
}
