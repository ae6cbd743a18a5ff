package app

import (
	"context"
	"html"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/five82/gammaconsole/internal/console"
	"github.com/five82/gammaconsole/internal/logtail"
	"github.com/five82/gammaconsole/internal/state"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	maxBackoff          = 30 * time.Second
)

// Follower feeds lines appended to a log file into a console.
type Follower struct {
	Path     string
	Name     string // caller label for lines without a component; file base name when empty
	Backfill int    // lines from the existing tail to show first; negative for all
	Interval time.Duration
	Escape   bool // escape line text before it reaches the console

	Console *console.Console
	Store   *state.Store
	Logger  *zap.Logger
}

// Run polls the file until ctx is done. It waits for the console to become
// ready before reading anything.
func (f *Follower) Run(ctx context.Context) {
	name := f.name()
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("path", f.Path))

	interval := f.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	if err := f.Console.WaitReady(ctx); err != nil {
		return
	}

	lines, offset, err := logtail.Tail(f.Path, f.Backfill)
	if err != nil {
		logger.Warn("backfill followed log", zap.Error(err))
	}
	f.feed(name, lines)
	f.record(name, len(lines), err)

	failures := 0
	if err != nil {
		failures = 1
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(calculateBackoff(failures, interval)):
		}

		lines, next, err := logtail.ReadFrom(f.Path, offset)
		if err != nil {
			failures++
			logger.Warn("poll followed log", zap.Int("failures", failures), zap.Error(err))
			f.record(name, 0, err)
			continue
		}
		failures = 0
		offset = next
		f.feed(name, lines)
		f.record(name, len(lines), nil)
	}
}

func (f *Follower) name() string {
	if f.Name != "" {
		return f.Name
	}
	return filepath.Base(f.Path)
}

func (f *Follower) feed(name string, lines []string) {
	for _, raw := range lines {
		line := logtail.Parse(raw)
		caller := line.Component
		if caller == "" {
			caller = name
		}
		text := line.Text
		if f.Escape {
			caller, text = html.EscapeString(caller), html.EscapeString(text)
		}
		f.Console.Log(line.Level, text, caller)
	}
}

func (f *Follower) record(name string, lines int, err error) {
	if f.Store != nil {
		f.Store.Update(name, f.Path, lines, err)
	}
}

// calculateBackoff doubles the poll interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
