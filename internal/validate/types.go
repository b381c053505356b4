// SPDX-License-Identifier: MIT

package validate

import "slices"

// LogLevel is a level name accepted by the logger configuration.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogLevels lists the accepted levels from most to least verbose.
var LogLevels = []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}

// IsValid reports whether l is one of LogLevels.
func (l LogLevel) IsValid() bool {
	return slices.Contains(LogLevels, l)
}

// ParseLogLevel returns s as a LogLevel, or ErrInvalidLogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	if l := LogLevel(s); l.IsValid() {
		return l, nil
	}
	return "", ErrInvalidLogLevel
}

// ErrInvalidLogLevel is returned by ParseLogLevel.
var ErrInvalidLogLevel = &Error{
	Field:   "logLevel",
	Message: "invalid log level (must be: debug, info, warn, error)",
}

// LogLevel records an error when value is not an accepted level.
func (v *Validator) LogLevel(field, value string) {
	if _, err := ParseLogLevel(value); err != nil {
		v.AddError(field, "must be one of debug, info, warn, error", value)
	}
}
