// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"github.com/ManuGH/qvdata/internal/log"
	"github.com/ManuGH/qvdata/internal/persistence/sqlite"
)

// Verify runs an integrity check on the catalog database at path. It returns
// the diagnostic rows when the database is damaged and nil when healthy.
func Verify(path string, mode sqlite.VerifyMode) ([]string, error) {
	logger := log.WithComponent("catalog")

	issues, err := sqlite.VerifyIntegrity(path, mode)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		logger.Warn().
			Str(log.FieldEvent, "catalog.integrity_failed").
			Str(log.FieldPath, path).
			Str("mode", string(mode)).
			Strs("issues", issues).
			Msg("catalog integrity check found problems")
		return issues, nil
	}
	logger.Debug().
		Str(log.FieldEvent, "catalog.integrity_ok").
		Str(log.FieldPath, path).
		Str("mode", string(mode)).
		Msg("catalog integrity check passed")
	return nil, nil
}
