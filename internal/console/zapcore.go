package console

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// ZapCore routes zap log entries into a console. The logger name becomes the
// caller label; fields are appended to the message as a JSON object.
type ZapCore struct {
	zapcore.LevelEnabler
	console *Console
	enc     zapcore.Encoder
}

// NewZapCore returns a core writing to c for every level enab allows.
func NewZapCore(c *Console, enab zapcore.LevelEnabler) *ZapCore {
	return &ZapCore{
		LevelEnabler: enab,
		console:      c,
		enc: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:       "msg",
			ConsoleSeparator: " ",
		}),
	}
}

// With implements zapcore.Core.
func (z *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &ZapCore{
		LevelEnabler: z.LevelEnabler,
		console:      z.console,
		enc:          z.enc.Clone(),
	}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

// Check implements zapcore.Core.
func (z *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if z.Enabled(ent.Level) {
		return ce.AddCore(ent, z)
	}
	return ce
}

// Write implements zapcore.Core.
func (z *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := z.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	text := strings.TrimRight(buf.String(), "\n")
	buf.Free()
	z.console.Log(levelFromZap(ent.Level), text, ent.LoggerName)
	return nil
}

// Sync implements zapcore.Core.
func (z *ZapCore) Sync() error { return nil }

func levelFromZap(l zapcore.Level) Level {
	switch {
	case l < zapcore.DebugLevel:
		return LevelVerbose
	case l == zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInfo
	case l == zapcore.WarnLevel:
		return LevelWarning
	default:
		return LevelError
	}
}
