// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads qvdata settings.
//
// Precedence is defaults, then the optional YAML file, then QVDATA_*
// environment variables. The result is validated before it is returned.
package config
