package logtail

import (
	"regexp"
	"strings"

	"github.com/five82/gammaconsole/internal/console"
)

var (
	levelRe     = regexp.MustCompile(`\b(TRACE|VERBOSE|DEBUG|INFO|WARN|WARNING|ERROR|ERR|FATAL|PANIC|CRITICAL)\b`)
	componentRe = regexp.MustCompile(`\[([^\]]+)\]`)
)

// Line is a raw log line with the severity and component sniffed from it.
type Line struct {
	Level     console.Level
	Component string
	Text      string
}

// Parse classifies a log line. Lines without a recognizable level are INFO;
// the first bracketed token, if any, is taken as the component.
func Parse(raw string) Line {
	line := Line{Level: console.LevelInfo, Text: raw}
	if m := levelRe.FindStringSubmatch(strings.ToUpper(raw)); m != nil {
		if lvl, ok := console.ParseLevel(m[1]); ok {
			line.Level = lvl
		}
	}
	if m := componentRe.FindStringSubmatch(raw); m != nil {
		line.Component = strings.TrimSpace(m[1])
	}
	return line
}
