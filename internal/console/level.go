package console

import "strings"

// Level is the severity of a console entry.
type Level int

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
)

var levelNames = [...]string{"VERBOSE", "DEBUG", "INFO", "WARNING", "ERROR"}

// Levels returns every level in ascending severity.
func Levels() []Level {
	return []Level{LevelVerbose, LevelDebug, LevelInfo, LevelWarning, LevelError}
}

// String returns the upper-case level name, which doubles as the default caller label.
func (l Level) String() string {
	if l < LevelVerbose || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Class returns the CSS class used for entry blocks of this level.
func (l Level) Class() string {
	return strings.ToLower(l.String())
}

// ParseLevel maps a level name (or a common alias) to a Level.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "VERBOSE", "TRACE":
		return LevelVerbose, true
	case "DEBUG":
		return LevelDebug, true
	case "INFO", "":
		return LevelInfo, true
	case "WARNING", "WARN":
		return LevelWarning, true
	case "ERROR", "ERR", "FATAL", "PANIC", "DPANIC", "CRITICAL":
		return LevelError, true
	}
	return LevelInfo, false
}
