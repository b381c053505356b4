// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"time"

	"github.com/ManuGH/qvdata/internal/validate"
)

// Validate checks the merged configuration and reports every problem at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("DataDir", cfg.DataDir)

	v.LogLevel("LogLevel", cfg.LogLevel)

	v.ParentDirectory("CatalogPath", cfg.CatalogPath)
	v.ParentDirectory("MetricsFile", cfg.MetricsFile)

	v.MinDuration("Watch.Interval", cfg.Watch.Interval, 100*time.Millisecond)
	if cfg.Watch.Debounce < 0 {
		v.AddError("Watch.Debounce", "must not be negative", cfg.Watch.Debounce)
	}

	v.OneOf("Export.Format", cfg.Export.Format, ExportFormats)
	v.OneOf("Export.Table", cfg.Export.Table, ExportTables)

	return v.Err()
}
