package logging

import (
	"strings"
)

// Level is a log level. Levels are ordered by verbosity, so a logger emits a
// message if the message's level is less than or equal to its own.
type Level uint

const (
	// LevelDisabled disables logging entirely.
	LevelDisabled Level = iota
	// LevelError logs only errors.
	LevelError
	// LevelWarn additionally logs recoverable failures, such as release
	// failures encountered during rollback.
	LevelWarn
	// LevelInfo additionally logs basic execution information.
	LevelInfo
	// LevelDebug additionally logs detailed execution information.
	LevelDebug
	// LevelTrace additionally logs low-level diagnostics, such as individual
	// retry attempts.
	LevelTrace
)

// levelNames are the level names, indexed by level.
var levelNames = [...]string{
	LevelDisabled: "disabled",
	LevelError:    "error",
	LevelWarn:     "warn",
	LevelInfo:     "info",
	LevelDebug:    "debug",
	LevelTrace:    "trace",
}

// LevelNames returns the names of all log levels, in order of increasing
// verbosity.
func LevelNames() []string {
	return append([]string(nil), levelNames[:]...)
}

// NameToLevel converts a level name to a Level. Names are matched without
// regard to case or surrounding whitespace. It returns a boolean indicating
// whether or not the conversion was valid. If the name is invalid,
// LevelDisabled is returned.
func NameToLevel(name string) (Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, candidate := range levelNames {
		if candidate == name {
			return Level(level), true
		}
	}
	return LevelDisabled, false
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}
