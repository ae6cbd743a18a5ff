package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusHook mirrors logrus entries into a console.
type LogrusHook struct {
	console *Console
	caller  string
	levels  []logrus.Level
}

// NewLogrusHook returns a hook for all logrus levels. Entries carry the given
// caller label unless they have a "component" field.
func NewLogrusHook(c *Console, caller string) *LogrusHook {
	return &LogrusHook{console: c, caller: caller, levels: logrus.AllLevels}
}

// Levels implements logrus.Hook.
func (h *LogrusHook) Levels() []logrus.Level {
	return h.levels
}

// Fire implements logrus.Hook.
func (h *LogrusHook) Fire(e *logrus.Entry) error {
	caller := h.caller
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k == "component" {
			caller = fmt.Sprint(e.Data[k])
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(e.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	h.console.Log(levelFromLogrus(e.Level), b.String(), caller)
	return nil
}

func levelFromLogrus(l logrus.Level) Level {
	switch l {
	case logrus.TraceLevel:
		return LevelVerbose
	case logrus.DebugLevel:
		return LevelDebug
	case logrus.InfoLevel:
		return LevelInfo
	case logrus.WarnLevel:
		return LevelWarning
	default:
		return LevelError
	}
}
