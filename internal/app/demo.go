package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/gammaconsole/internal/console"
)

const defaultDemoInterval = 750 * time.Millisecond

// demoLoggers are three ordinary logging front-ends writing into one console.
type demoLoggers struct {
	zap    *zap.Logger
	slog   *slog.Logger
	logrus *logrus.Logger
}

func newDemoLoggers(c *console.Console) demoLoggers {
	lr := logrus.New()
	lr.SetOutput(io.Discard)
	lr.SetLevel(logrus.TraceLevel)
	lr.AddHook(console.NewLogrusHook(c, "logrus"))

	return demoLoggers{
		zap:    zap.New(console.NewZapCore(c, zapcore.DebugLevel)).Named("zap"),
		slog:   slog.New(console.NewSlogHandler(c, slog.LevelDebug, "slog")),
		logrus: lr,
	}
}

// demoScript is cycled through, one step per tick.
var demoScript = []func(l demoLoggers){
	func(l demoLoggers) { l.zap.Info("console started", zap.String("mode", "demo")) },
	func(l demoLoggers) { l.slog.Debug("cache warmed", "entries", 128, "took", 42*time.Millisecond) },
	func(l demoLoggers) { l.logrus.WithField("component", "scheduler").Info("job queued") },
	func(l demoLoggers) { l.zap.Debug("tick", zap.Int("goroutines", 7)) },
	func(l demoLoggers) { l.slog.Warn("slow request", slog.Group("http", "path", "/api/items", "ms", 812)) },
	func(l demoLoggers) { l.logrus.Trace("heartbeat") },
	func(l demoLoggers) { l.zap.Warn("retrying upstream", zap.Int("attempt", 2)) },
	func(l demoLoggers) { l.logrus.WithFields(logrus.Fields{"user": "alice", "id": 7}).Error("permission denied") },
	func(l demoLoggers) { l.slog.Error("write failed", "err", io.ErrShortWrite) },
	func(l demoLoggers) { l.zap.Info("<b>markup</b> passes through unless escaping is on") },
}

// runDemo emits sample traffic until ctx is done.
func runDemo(ctx context.Context, c *console.Console, every time.Duration) {
	if every <= 0 {
		every = defaultDemoInterval
	}
	if err := c.WaitReady(ctx); err != nil {
		return
	}

	loggers := newDemoLoggers(c)
	defer func() { _ = loggers.zap.Sync() }()

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for i := 0; ; i++ {
		demoScript[i%len(demoScript)](loggers)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
